package terminal

import (
	"github.com/gdamore/tcell/v2"
	"gridCalc/engine"
)

// Run shows an empty grid on the terminal until the user quits
func Run(options ...engine.Option) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}

	if err = screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	NewGrid(options...).Loop(screen)
	return nil
}

// Loop draws the grid and handles screen events until quit or until the screen is finalized
func (g *Grid) Loop(s tcell.Screen) {
	for !g.quit {
		g.Draw(s)

		switch ev := s.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			g.HandleKeyEvent(ev)
		}
	}
}
