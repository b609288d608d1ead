package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"precheck/internal/referencedata"
	"precheck/internal/validation/chains"
	"precheck/internal/validation/handler"
	"precheck/internal/validation/service"
	"precheck/pkg/platform/httputil"
)

func newCaseCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Validate a case with its defendants",
		Long: `Validate a case submission: the case details, then every defendant
with its offences and initial hearing.

Example:
  precheck case --file case.json
  cat case.json | precheck case`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidation(cmd, opts, file,
				func(ctx context.Context, svc *service.Service, body io.Reader) (bool, any, error) {
					req, err := httputil.Decode[handler.CaseRequest](body)
					if err != nil {
						return false, nil, err
					}
					result, err := svc.ValidateCase(ctx, req.ToSubmission())
					if err != nil {
						return false, nil, err
					}
					resp := handler.FromCaseResult(result)
					return resp.Valid, resp, nil
				})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Submission JSON file (default: stdin)")
	return cmd
}

func newDefendantCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "defendant",
		Short: "Validate a single defendant in the context of its case",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidation(cmd, opts, file,
				func(ctx context.Context, svc *service.Service, body io.Reader) (bool, any, error) {
					req, err := httputil.Decode[handler.SingleDefendantRequest](body)
					if err != nil {
						return false, nil, err
					}
					result, err := svc.ValidateDefendant(ctx, req.ToSubmission())
					if err != nil {
						return false, nil, err
					}
					resp := handler.FromDefendantResult(result)
					return resp.Valid, resp, nil
				})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Submission JSON file (default: stdin)")
	return cmd
}

func newDocumentCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Validate a document and resolve its defendants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidation(cmd, opts, file,
				func(ctx context.Context, svc *service.Service, body io.Reader) (bool, any, error) {
					req, err := httputil.Decode[handler.DocumentRequest](body)
					if err != nil {
						return false, nil, err
					}
					result, err := svc.ValidateDocument(ctx, req.ToSubmission())
					if err != nil {
						return false, nil, err
					}
					resp := handler.FromDocumentResult(result)
					return resp.Valid, resp, nil
				})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Submission JSON file (default: stdin)")
	return cmd
}

type validateFunc func(ctx context.Context, svc *service.Service, body io.Reader) (valid bool, resp any, err error)

// runValidation builds an in-process service over the selected catalogue,
// runs validate on the submission and prints the response.
func runValidation(cmd *cobra.Command, opts *rootOptions, file string, validate validateFunc) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	svc, err := newService(opts)
	if err != nil {
		return err
	}

	body := cmd.InOrStdin()
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		body = f
	}

	valid, resp, err := validate(ctx, svc, body)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(resp); err != nil {
		return err
	}
	if !valid {
		return errInvalid
	}
	return nil
}

func newService(opts *rootOptions) (*service.Service, error) {
	policy, err := chains.ParseMatchPolicy(opts.matchPolicy)
	if err != nil {
		return nil, err
	}

	catalogue := referencedata.DefaultCatalogue()
	if opts.referenceData != "" {
		catalogue, err = referencedata.LoadCatalogue(opts.referenceData)
		if err != nil {
			return nil, err
		}
	}
	return service.New(referencedata.NewInMemoryGateway(catalogue), service.WithMatchPolicy(policy))
}
