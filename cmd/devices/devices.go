// Package devices implements the devices subcommand.
package devices

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/replay-go/internal/myaudio"
)

// Command returns the devices subcommand.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List available audio capture devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := myaudio.ListCaptureDevices()
			if err != nil {
				return err
			}

			if len(devices) == 0 {
				fmt.Println("No capture devices found")
				return nil
			}

			fmt.Println("Available capture devices:")
			for _, d := range devices {
				fmt.Printf("  %d: %s (%s)\n", d.Index, d.Name, d.ID)
			}
			return nil
		},
	}
	return cmd
}
