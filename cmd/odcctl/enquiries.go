package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/pkg/validator"
	"github.com/odc-estimate/internal/repository/postgres"
	"github.com/odc-estimate/internal/usecase"
	"github.com/odc-estimate/internal/usecase/dto"
)

var (
	exportReq dto.EnquiryListRequest
	exportOut string
)

var enquiriesCmd = &cobra.Command{
	Use:   "enquiries",
	Short: "Work with submitted enquiries",
}

var enquiriesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export enquiries to CSV or XLSX",
	Long:  "Writes the enquiries matching the filters to a file. The file name defaults to enquiries-<timestamp>.<format> in the --out directory.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := validator.Validate(&exportReq); err != nil {
			return eris.Wrapf(err, "invalid filters, fields %v", validator.FieldNames(err))
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := zap.L()

		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			return eris.Wrap(err, "connect to database")
		}
		defer db.Close()

		uc := usecase.NewEnquiryUseCase(postgres.NewEnquiryRepository(db), nil, log)

		tmp, err := os.CreateTemp(exportOut, ".enquiries-*")
		if err != nil {
			return eris.Wrap(err, "create output file")
		}
		defer os.Remove(tmp.Name())

		format, name, err := uc.Export(cmd.Context(), exportReq, tmp)
		if cerr := tmp.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			return eris.Wrap(err, "export enquiries")
		}

		target := filepath.Join(exportOut, name)
		if err := os.Rename(tmp.Name(), target); err != nil {
			return eris.Wrapf(err, "move export to %s", target)
		}

		log.Info("enquiries exported", zap.String("format", string(format)), zap.String("file", target))
		fmt.Fprintln(cmd.OutOrStdout(), target)
		return nil
	},
}

func init() {
	f := enquiriesExportCmd.Flags()
	f.StringVar(&exportReq.Format, "format", "csv", "export format: csv or xlsx")
	f.StringVar(&exportReq.Email, "email", "", "substring of the contact e-mail")
	f.StringVar(&exportReq.Start, "start", "", "substring of the start location")
	f.StringVar(&exportReq.End, "end", "", "substring of the end location")
	f.StringVar(&exportReq.Date, "date", "", "creation day, YYYY-MM-DD")
	f.StringVar(&exportOut, "out", ".", "output directory")

	enquiriesCmd.AddCommand(enquiriesExportCmd)
	rootCmd.AddCommand(enquiriesCmd)
}
