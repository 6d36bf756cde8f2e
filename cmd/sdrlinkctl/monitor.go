// File: cmd/sdrlinkctl/monitor.go
// Author: momentics <momentics@gmail.com>
//
// monitor: drain async hardware events and fast-path markers.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

var monitorInterval time.Duration

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Stream async hardware events until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDevice()
		if err != nil {
			return err
		}
		defer d.Close()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)

		for {
			select {
			case <-stop:
				return nil
			default:
			}
			if md, ok := d.RecvAsyncMsg(monitorInterval); ok {
				ts := "-"
				if md.HasTimeSpec {
					ts = md.TimeSpec.String()
				}
				fmt.Printf("chan=%d code=%#x time=%s\n", md.Channel, md.EventCode, ts)
			}
			if markers := d.Fastpath().Drain(); len(markers) > 0 {
				os.Stdout.Write(markers)
			}
		}
	},
}

func init() {
	monitorCmd.Flags().DurationVar(&monitorInterval, "interval", 250*time.Millisecond, "event poll interval")
	rootCmd.AddCommand(monitorCmd)
}
