package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farmxchain/farmx/app/services"
	"github.com/farmxchain/farmx/pkg/storage"
)

// farmx upload FILE... [--disk NAME]
func newUploadCmd(c *cli) *cobra.Command {
	var disk string
	cmd := &cobra.Command{
		Use:         "upload FILE...",
		Short:       "Upload images and print their public URLs",
		Long:        "Upload images to the backend. With --disk the paths are read from a configured storage disk (local or s3) instead of the working directory.",
		Args:        cobra.MinimumNArgs(1),
		Annotations: signedIn(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			if cmd.Flags().Changed("disk") {
				if err := storage.Connect(ctx); err != nil {
					return fmt.Errorf("storage: %w", err)
				}
				for _, p := range args {
					url, err := c.svc.Upload.UploadFromDisk(ctx, disk, p)
					if err != nil {
						return failed(err, "Upload failed")
					}
					fmt.Fprintln(w, url)
				}
				return nil
			}

			files := make([]services.File, 0, len(args))
			for _, p := range args {
				f, err := readFile(p)
				if err != nil {
					return err
				}
				files = append(files, f)
			}
			urls, err := c.svc.Upload.UploadMany(ctx, files)
			if err != nil {
				return failed(err, "Upload failed")
			}
			return c.show(w, urls, func() error {
				for _, u := range urls {
					fmt.Fprintln(w, u)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&disk, "disk", "", "read from this storage disk (empty for the default disk)")
	return cmd
}
