package commands

import (
	"github.com/spf13/cobra"

	"github.com/giygas/medlabel-api/catalog/entities"
	"github.com/giygas/medlabel-api/validation"
)

func validateCmd(opts *options) *cobra.Command {
	var record entities.ExtractedRecord

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a medicine record against the catalog",
		Example: `  medlabel validate --name Paracetamol --expiry 2027-03-01 --ingredient Acetaminophen
  medlabel validate --name "Amoxicillin Clavulanate" -i "Amoxicillin Trihydrate" -i "Potassium Clavulanate"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.NewInputValidator().ValidateRecord(&record); err != nil {
				return err
			}

			cat, err := opts.loadCatalog("")
			if err != nil {
				return err
			}

			verdict := validation.NewMedicineValidator(cat).Validate(record)
			return render(cmd.OutOrStdout(), opts.output, verdict)
		},
	}

	cmd.Flags().StringVarP(&record.MedicineName, "name", "n", "", "medicine name")
	cmd.Flags().StringVarP(&record.ExpiryDate, "expiry", "e", "", "expiry date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVarP(&record.ActiveIngredients, "ingredient", "i", nil, "active ingredient, repeatable")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
