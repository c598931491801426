package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyloop/internal/store"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List stored courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		courses, err := st.ListCourses(cmd.Context())
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			fmt.Println("No courses yet. Start the server and create one.")
			return nil
		}
		for _, c := range courses {
			fmt.Printf("%4d  %-40s  created %s\n", c.ID, c.Name, c.CreatedAt)
		}
		return nil
	},
}
