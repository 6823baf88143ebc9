// Package feedback surfaces the outcome of API calls to an interactive user.
//
// It has three parts that are normally used together by a client of the
// filevault HTTP API:
//
//   - Notifier shows transient toast notifications. At most one toast exists at
//     a time; showing a new one removes the current one immediately. A toast is
//     visible for its duration (5s by default), then fades for 300ms and is
//     removed. Rendering is delegated to a Renderer.
//   - Control and SetLoading toggle the busy state of an interactive control,
//     restoring its original content when the busy state ends.
//   - Client.FetchWithFeedback wraps an HTTP call returning the standard
//     {success, message, error, data} envelope, toggling the busy state and
//     raising toasts for every outcome.
//
// # Usage
//
//	n := feedback.NewNotifier(feedback.NewConsoleRenderer(os.Stdout))
//	client := feedback.NewClient(n, feedback.WithBaseURL("http://localhost:8080"))
//	btn := feedback.NewControl("Upload")
//	env, err := client.FetchWithFeedback(ctx, "/files?key=a.txt", feedback.RequestOptions{
//	    Method: http.MethodPut,
//	    Body:   bytes.NewReader(data),
//	}, btn, "Uploaded")
package feedback
