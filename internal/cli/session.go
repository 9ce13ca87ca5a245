package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// ListSessions prints one row per stored session.
func ListSessions(ctx context.Context, app *App, out io.Writer) error {
	ids, err := app.Sessions.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, "No active sessions found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODE\tRESULT\tUPDATED")
	for _, id := range ids {
		sess, err := app.Sessions.Load(ctx, id)
		if err != nil {
			// Expired between List and Load.
			continue
		}
		result := "-"
		if sess.Result != nil {
			result = fmt.Sprintf("life path %d", sess.Result.LifePath)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", sess.ID, sess.Mode, result, sess.UpdatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

// InspectSession prints the stored session as JSON.
func InspectSession(ctx context.Context, app *App, id string, out io.Writer) error {
	sess, err := app.Sessions.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load session %q: %w", id, err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(sess)
}

// RemoveSession deletes one session.
func RemoveSession(ctx context.Context, app *App, id string, out io.Writer) error {
	if _, err := app.Sessions.Load(ctx, id); err != nil {
		return fmt.Errorf("failed to load session %q: %w", id, err)
	}
	if err := app.Sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session %q: %w", id, err)
	}
	printSystemMessage(out, "Session '%s' deleted.", id)
	return nil
}
