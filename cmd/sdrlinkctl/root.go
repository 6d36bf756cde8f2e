// File: cmd/sdrlinkctl/root.go
// Author: momentics <momentics@gmail.com>
//
// Root command: configuration loading, logging setup and the device
// session shared by the subcommands. The CLI talks to the link with
// inert front-end stubs; real DSP programming belongs to the register
// layer, which this diagnostic tool does not touch.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/momentics/hioload-sdr/api"
	"github.com/momentics/hioload-sdr/device"
	"github.com/momentics/hioload-sdr/fake"
	"github.com/momentics/hioload-sdr/transport/usb"
)

var (
	cfgFile string
	useFake bool
	verbose bool

	cfg *cliConfig
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sdrlinkctl",
	Short: "Diagnostics for the USB/FPGA SDR link I/O core",
	Long: `sdrlinkctl opens a link session, applies the configured routing and
exposes the I/O core's internal state: pending-queue depths, drop and
anomaly counters, async hardware events and fast-path markers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cfgFile)
		if err != nil {
			return err
		}
		if verbose {
			log, err = zap.NewDevelopment()
		} else {
			log, err = zap.NewProduction()
		}
		return err
	},
}

// openDevice builds a device session from the loaded configuration.
func openDevice() (*device.Device, error) {
	var xport api.WireTransport
	if useFake {
		lk := cfg.Link.WithDefaults()
		xport = fake.NewTransport(lk.NumRecvFrames, lk.RecvFrameSize)
	} else {
		t, err := usb.Open(cfg.Link, log.Named("usb"))
		if err != nil {
			return nil, err
		}
		xport = t
	}

	width := len(cfg.Routing.Rx)
	if width == 0 {
		width = 1
	}
	rxFes := make([]api.RxFrontend, width)
	for i := range rxFes {
		rxFes[i] = &fake.RxFrontend{}
	}

	d := device.New(xport, &fake.Clock{Rate: cfg.TickRate}, cfg.routingTree(),
		rxFes, &fake.TxFrontend{}, device.WithLogger(log))
	d.UpdateTickRate(cfg.TickRate)

	if len(cfg.Routing.Rx) > 0 {
		if err := d.UpdateRxRouting(specOf(cfg.Routing.Rx)); err != nil {
			return nil, err
		}
	}
	if len(cfg.Routing.Tx) > 0 {
		if err := d.UpdateTxRouting(specOf(cfg.Routing.Tx)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "sdrlink.yaml", "config file")
	rootCmd.PersistentFlags().BoolVar(&useFake, "fake", false, "use an in-memory fake link instead of the USB device")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development logging")
}
