package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"filevault/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	listPrefix    string
	listDelimiter string
	listMaxKeys   int
	listAll       bool
	signOperation string
	signExpiry    time.Duration
)

// filesCmd groups direct bucket operations
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Operate on the bucket directly",
	Long:  `Runs storage operations against the configured bucket without going through the HTTP server.`,
}

// filesListCmd represents the files list command
var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List objects",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		opts := storage.ListOptions{Prefix: listPrefix, Delimiter: listDelimiter, MaxKeys: listMaxKeys}
		total := 0
		for {
			page, err := rt.bucket.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			for _, p := range page.CommonPrefixes {
				fmt.Printf("%12s  %s\n", "PRE", p)
			}
			for _, obj := range page.Objects {
				fmt.Printf("%12d  %s  %s\n", obj.Size, obj.LastModified.Format(time.RFC3339), obj.Key)
			}
			total += len(page.Objects)

			if !listAll || !page.HasMore {
				break
			}
			opts.ContinuationToken = page.NextContinuationToken
		}

		rt.logger.Debug("Listing finished", zap.Int("objects", total))
		return nil
	},
}

// filesDeleteCmd represents the files delete command
var filesDeleteCmd = &cobra.Command{
	Use:   "delete <key>...",
	Short: "Delete one or more objects",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		if len(args) == 1 {
			if _, err := rt.bucket.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		}

		result, err := rt.bucket.BatchDelete(cmd.Context(), args)
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d/%d objects in %d request(s)\n", result.DeletedCount, result.Requested, result.Chunks)
		for _, e := range result.Errors {
			fmt.Printf("  failed %s: %s\n", e.Key, e.Message)
		}
		if len(result.Errors) > 0 {
			return fmt.Errorf("%d object(s) could not be deleted", len(result.Errors))
		}
		return nil
	},
}

// filesStatCmd represents the files stat command
var filesStatCmd = &cobra.Command{
	Use:   "stat <key>",
	Short: "Show object metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		meta, err := rt.bucket.Metadata(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	},
}

// filesSignCmd represents the files sign command
var filesSignCmd = &cobra.Command{
	Use:   "sign <key>",
	Short: "Create a signed URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		signed, err := rt.bucket.SignedURL(cmd.Context(), args[0], storage.SignOperation(signOperation), signExpiry)
		if err != nil {
			return err
		}
		fmt.Println(signed.URL)
		fmt.Fprintf(os.Stderr, "expires at %s\n", signed.ExpiresAt.Format(time.RFC3339))
		return nil
	},
}

func init() {
	filesListCmd.Flags().StringVar(&listPrefix, "prefix", "", "Only list keys with this prefix")
	filesListCmd.Flags().StringVar(&listDelimiter, "delimiter", "", "Group keys by this delimiter")
	filesListCmd.Flags().IntVar(&listMaxKeys, "max-keys", storage.DefaultMaxKeys, "Page size")
	filesListCmd.Flags().BoolVar(&listAll, "all", false, "Follow continuation tokens until the listing is complete")

	filesSignCmd.Flags().StringVar(&signOperation, "op", string(storage.SignRead), "read or write")
	filesSignCmd.Flags().DurationVar(&signExpiry, "expiry", storage.DefaultSignedURLExpiry, "URL lifetime")

	filesCmd.AddCommand(filesListCmd)
	filesCmd.AddCommand(filesDeleteCmd)
	filesCmd.AddCommand(filesStatCmd)
	filesCmd.AddCommand(filesSignCmd)
	RootCmd.AddCommand(filesCmd)
}
