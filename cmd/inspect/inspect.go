// Package inspect implements the inspect subcommand.
package inspect

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tphakala/replay-go/internal/myaudio"
)

// Command returns the inspect subcommand.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print format information for an exported clip (WAV or FLAC)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := myaudio.ReadAudioInfo(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("File:         %s\n", args[0])
			fmt.Printf("Sample rate:  %d Hz\n", info.SampleRate)
			fmt.Printf("Channels:     %d\n", info.NumChannels)
			fmt.Printf("Bit depth:    %d\n", info.BitDepth)
			fmt.Printf("Samples:      %d\n", info.TotalSamples)
			fmt.Printf("Duration:     %s\n", info.Duration().Round(time.Millisecond))
			return nil
		},
	}
	return cmd
}
