package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/giygas/medlabel-api/catalog/entities"
	"github.com/giygas/medlabel-api/extraction"
	"github.com/giygas/medlabel-api/notify"
	"github.com/giygas/medlabel-api/validation"
)

type extractResult struct {
	ScanID  string                      `json:"scanId"`
	Record  *entities.ExtractedRecord   `json:"record"`
	Verdict *entities.ValidationVerdict `json:"verdict,omitempty"`
}

func extractCmd(opts *options) *cobra.Command {
	var (
		validate bool
		latency  time.Duration
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Read a medicine label photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(filepath.Clean(args[0]))
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			if _, err := validation.NewInputValidator().ValidateImage(image); err != nil {
				return err
			}

			cat, err := opts.loadCatalog("")
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			notifier := notify.Func(func(_ context.Context, n entities.Notification) {
				fmt.Fprintf(stderr, "%s: %s\n", n.Title, n.Description)
			})

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			sim := extraction.NewSimulator(cat, notifier, extraction.WithLatency(latency))
			record, err := sim.Extract(ctx, image)
			if err != nil {
				return err
			}

			result := extractResult{ScanID: uuid.NewString(), Record: record}
			if validate {
				verdict := validation.NewMedicineValidator(cat).Validate(*record)
				result.Verdict = &verdict
			}

			return render(cmd.OutOrStdout(), opts.output, result)
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", false, "validate the extracted record against the catalog")
	cmd.Flags().DurationVar(&latency, "latency", extraction.DefaultLatency, "simulated recognition time")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "give up after this long")

	return cmd
}
