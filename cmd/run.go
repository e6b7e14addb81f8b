package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/tutor/internal/app"
	"github.com/abhisek/tutor/internal/config"
	"github.com/abhisek/tutor/internal/conversation"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/state"
	"github.com/abhisek/tutor/internal/store"
	"github.com/abhisek/tutor/internal/tutor"
)

// runtime is everything a front end needs to drive a conversation.
type runtime struct {
	cfg        *config.Config
	store      *store.Store
	notifier   *state.Notifier
	selection  *state.Selection
	progress   *state.ProgressStore
	controller *conversation.Controller
}

func (r *runtime) Close() error {
	return r.store.Close()
}

// buildRuntime loads config, opens the store and wires the tutor. A provider
// that cannot be built is reported once and every turn then fails with a
// configuration error in the chat.
func buildRuntime(cmd *cobra.Command) (*runtime, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Chat replies will show the configuration error.")
		provider = llm.Unconfigured(err)
	}

	notifier := state.NewNotifier()
	r := &runtime{
		cfg:       cfg,
		store:     st,
		notifier:  notifier,
		selection: state.NewSelection(notifier),
		progress:  state.NewProgressStore(notifier),
	}
	r.controller = conversation.New(tutor.NewClient(provider, cfg.Tutor), r.selection, r.progress, notifier)
	return r, nil
}

// runApp launches the TUI, or a plain line-based chat when stdin is not a
// terminal.
func runApp(cmd *cobra.Command) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := applyPreselection(cmd, rt.selection); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return runLines(cmd.Context(), rt, os.Stdin, cmd.OutOrStdout())
	}

	return app.Run(app.Options{
		Controller: rt.controller,
		Selection:  rt.selection,
		Progress:   rt.progress,
	})
}

// runLines submits every non-blank input line as one chat turn.
func runLines(ctx context.Context, rt *runtime, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !rt.selection.Ready() {
		return fmt.Errorf("line mode needs --subject and --difficulty")
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		reply, ok := rt.controller.Submit(ctx, line)
		if !ok {
			continue
		}
		printReply(out, reply)
	}
	return sc.Err()
}

func printReply(out io.Writer, m conversation.Message) {
	prefix := "tutor"
	if m.Kind == conversation.KindError {
		prefix = "error"
	}
	fmt.Fprintf(out, "%s> %s\n", prefix, m.Content)

	if m.Metadata == nil {
		return
	}
	if m.Metadata.IsCorrect != nil {
		if *m.Metadata.IsCorrect {
			fmt.Fprintln(out, "  ✓ Correct")
		} else {
			fmt.Fprintln(out, "  ✗ Not quite")
		}
	}
	for _, h := range m.Metadata.Hints {
		fmt.Fprintf(out, "  • %s\n", h)
	}
}
