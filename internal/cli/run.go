package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"github.com/kryonlabs/mindscape/config"
	"github.com/kryonlabs/mindscape/event"
	"github.com/kryonlabs/mindscape/render"
	"github.com/kryonlabs/mindscape/render/raylib"
	"github.com/kryonlabs/mindscape/widget"
)

func (c *CLI) runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run [scene.toml]",
		Short: "Open a window and run a scene",
		Long: `Open a window and run a scene until the window is closed or the scene quits.

Widgets bind handlers by name through on_event. Built-in handlers:
  log   debug-log every event the widget receives (use -v to see them)
  quit  stop when Escape is pressed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := loadScene(args)
			if err != nil {
				return err
			}
			return c.runScene(cmd.Context(), scene)
		},
	}
}

func (c *CLI) runScene(ctx context.Context, scene *config.Scene) error {
	cfg, err := scene.Window.Config()
	if err != nil {
		return err
	}
	s := newSession(c.Logger)
	root, err := config.Build(scene, s.handlers(), s.log)
	if err != nil {
		return err
	}

	r := raylib.New(cfg, s.log)
	if err := r.Init(); err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	defer r.Cleanup()

	return s.loop(ctx, r, root)
}

// backend is what the frame loop needs from a windowing renderer.
type backend interface {
	render.Renderer
	event.Surface
	ShouldClose() bool
	BeginFrame()
	EndFrame()
	PollNotifications() []event.Notification
}

// session is the state of one run: the quit flag the built-in handlers set.
type session struct {
	log  *log.Logger
	quit bool
}

func newSession(l *log.Logger) *session {
	return &session{log: l}
}

func (s *session) handlers() config.Handlers {
	return config.Handlers{
		"log": func(ev event.Event) {
			s.log.Debug("event", "event", ev)
		},
		"quit": func(ev event.Event) {
			if k, ok := ev.(event.KeyDown); ok && k.Key == rl.KeyEscape {
				s.log.Info("escape pressed, quitting")
				s.quit = true
			}
		},
	}
}

// loop runs frames until the window closes, a handler quits or ctx is cancelled.
func (s *session) loop(ctx context.Context, b backend, root *widget.Container) error {
	tr := event.NewTranslator(b)
	frames := 0
	for !s.quit && !b.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, n := range b.PollNotifications() {
			for ev := range tr.Translate(n) {
				event.Trigger(root, ev)
			}
		}
		if s.quit {
			break
		}

		b.BeginFrame()
		err := render.Draw(b, root)
		b.EndFrame()
		if err != nil {
			return fmt.Errorf("frame %d: %w", frames, err)
		}
		frames++
	}
	s.log.Info("stopped", "frames", frames)
	return nil
}
