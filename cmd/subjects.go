package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/catalog"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List subjects and difficulty levels",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Subjects")
		for _, s := range catalog.Subjects() {
			fmt.Fprintf(out, "  %-12s  %s %s\n", s.ID, s.Icon, s.Name)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Difficulties")
		for _, d := range catalog.Difficulties() {
			fmt.Fprintf(out, "  %-12s  %s\n", d.ID, d.Name)
		}
	},
}
