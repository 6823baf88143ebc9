package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"filevault/core/feedback"
	"filevault/core/middleware/auth"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	probeURL    string
	probeAPIKey string
)

// probeCmd represents the probe command
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Exercise a running server end to end",
	Long: `Uploads a small object through the HTTP API, reads its metadata, signs a URL
for it and deletes it again, reporting each step as a notification.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		notifier := feedback.NewNotifier(feedback.NewConsoleRenderer(os.Stdout))
		client := feedback.NewClient(notifier,
			feedback.WithBaseURL(probeURL),
			feedback.WithHeader(auth.Header, probeAPIKey),
			feedback.WithHTTPClient(&http.Client{Timeout: 15 * time.Second}),
		)
		control := feedback.NewControl("probe")
		ctx := cmd.Context()

		key := "probe/" + uuid.NewString() + ".txt"
		q := "?key=" + url.QueryEscape(key)

		steps := []struct {
			endpoint string
			opts     feedback.RequestOptions
			success  string
		}{
			{"/health", feedback.RequestOptions{}, "Server is healthy"},
			{"/files" + q, feedback.RequestOptions{
				Method: http.MethodPut,
				Header: http.Header{"Content-Type": {"text/plain"}},
				Body:   bytes.NewReader([]byte("filevault probe " + time.Now().UTC().Format(time.RFC3339))),
			}, "Uploaded " + key},
			{"/files/metadata" + q, feedback.RequestOptions{}, "Metadata readable"},
			{"/files/sign", feedback.RequestOptions{
				Method: http.MethodPost,
				JSON:   map[string]any{"key": key, "operation": "read", "expires_in": 60},
			}, "Signed URL issued"},
			{"/files" + q, feedback.RequestOptions{Method: http.MethodDelete}, "Deleted " + key},
		}

		for _, step := range steps {
			if _, err := client.FetchWithFeedback(ctx, step.endpoint, step.opts, control, step.success); err != nil {
				return fmt.Errorf("probe failed at %s: %w", step.endpoint, err)
			}
		}
		return nil
	},
}

func init() {
	probeCmd.Flags().StringVar(&probeURL, "url", "http://localhost:8080", "Base URL of the server")
	probeCmd.Flags().StringVar(&probeAPIKey, "api-key", os.Getenv("SERVER_API_KEY"), "API key")
	RootCmd.AddCommand(probeCmd)
}
