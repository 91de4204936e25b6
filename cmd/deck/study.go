package main

import (
	"context"
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sky-flux/deck"
	"github.com/sky-flux/deck/tui"
)

func studyCMD(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "study",
		Short: "Study a shuffled session of the visible exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags, tui.ScreenStudy)
		},
	}
}

func manageCMD(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "manage",
		Short: "Edit, hide, delete or restore exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags, tui.ScreenManage)
		},
	}
}

func runTUI(cmd *cobra.Command, flags *globalFlags, start tui.Screen) error {
	return withApp(cmd, flags, true, func(ctx context.Context, a *app) error {
		lang, err := a.cfg.Session.Language()
		if err != nil {
			return err
		}
		m := tui.New(tui.Options{
			Context:    ctx,
			Provider:   a.store,
			Sampler:    a.sampler(),
			Logger:     a.log,
			Records:    a.records(ctx),
			Defaults:   deck.DefaultRecords(),
			Language:   lang,
			ResetDelay: a.cfg.Session.ResetDelay,
			Start:      start,
		})
		_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return err
	})
}

// drawnCard is one line of `deck draw --json` output.
type drawnCard struct {
	Session  string        `json:"session"`
	Position int           `json:"position"`
	Total    int           `json:"total"`
	Phase    deck.Phase    `json:"phase"`
	Progress float64       `json:"progress"`
	Language deck.Language `json:"language"`
	ID       int64         `json:"id"`
	Title    string        `json:"title"`
}

func drawCMD(flags *globalFlags) *cobra.Command {
	var count int
	var lang string
	var asJSON bool

	draw := &cobra.Command{
		Use:   "draw",
		Short: "Print the cards of a new session without the interactive screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, false, func(ctx context.Context, a *app) error {
				l, err := a.language(lang)
				if err != nil {
					return err
				}
				sampler := a.sampler()
				sess := sampler.Initialize(a.records(ctx), nil)
				w := cmd.OutOrStdout()
				if sess.IsEmpty() {
					fmt.Fprintln(w, "No exercises available")
					return nil
				}
				a.log.WithFields(logrus.Fields{
					"session": sess.ID,
					"cards":   sess.Len(),
				}).Debug("session started")

				n := count
				if n <= 0 {
					n = sess.Len()
				}
				enc := json.NewEncoder(w)
				for i := 0; i < n; i++ {
					if i > 0 {
						sess = sampler.Advance(sess)
					}
					rec, _ := sess.Current()
					card := drawnCard{
						Session:  sess.ID,
						Position: sess.Cursor() + 1,
						Total:    sess.Len(),
						Phase:    sess.Phase(),
						Progress: sess.Progress(),
						Language: l,
						ID:       rec.ID,
						Title:    rec.Title(l),
					}
					if asJSON {
						if err := enc.Encode(card); err != nil {
							return err
						}
						continue
					}
					fmt.Fprintf(w, "Card %d / %d  %-9s %3.0f%%  %s\n",
						card.Position, card.Total, card.Phase, card.Progress, card.Title)
				}
				return nil
			})
		},
	}
	draw.Flags().IntVarP(&count, "count", "n", 0, "number of cards to draw (0 draws one pass)")
	draw.Flags().StringVar(&lang, "lang", "", "display language (en, fr)")
	draw.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per card")
	return draw
}
