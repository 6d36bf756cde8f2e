// File: cmd/sdrlinkctl/probe.go
// Author: momentics <momentics@gmail.com>
//
// probe: open a session, apply routing and dump core state.

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Open a link session and dump I/O core state",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDevice()
		if err != nil {
			return err
		}
		defer d.Close()

		fmt.Printf("rx channels:      %d\n", d.NumRxChans())
		fmt.Printf("tx channels:      %d\n", d.NumTxChans())
		fmt.Printf("max recv samps:   %d\n", d.MaxRecvSampsPerPacket())
		fmt.Printf("max send samps:   %d\n", d.MaxSendSampsPerPacket())

		probes := d.Probes().DumpState()
		keys := make([]string, 0, len(probes))
		for k := range probes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-18s%v\n", k+":", probes[k])
		}

		metrics := d.Metrics().GetSnapshot()
		keys = keys[:0]
		for k := range metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-18s%v\n", k+":", metrics[k])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
