package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessro/ytplay/internal/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the stored session",
	Long:  `Commands for viewing and clearing the playlist, API key and player directory reused by 'ytplay' without arguments.`,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored session",
	RunE:  runSessionShow,
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored session",
	RunE:  runSessionClear,
}

func init() {
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionClearCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	store, err := session.NewStore("")
	if err != nil {
		return err
	}
	sess, err := store.Load()
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"path":    store.Path(),
			"session": sess,
		})
	}

	if sess.Empty() {
		fmt.Println("No session stored.")
		return nil
	}

	Normal("Playlist", sess.PlaylistURL)
	Normal("API key", maskKey(sess.APIKey))
	Normal("Player dir", valueOr(sess.PlayerDir, "(PATH)"))
	Normal("File", store.Path())
	return nil
}

func runSessionClear(cmd *cobra.Command, args []string) error {
	store, err := session.NewStore("")
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "cleared",
			"path":   store.Path(),
		})
	}
	fmt.Println("Session cleared.")
	return nil
}
