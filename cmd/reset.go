package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyloop/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset <course-id>",
	Short: "Delete a course and everything scheduled for it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("course id must be a number: %q", args[0])
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteCourse(cmd.Context(), courseID); err != nil {
			return err
		}
		fmt.Printf("Deleted course %d\n", courseID)
		return nil
	},
}
