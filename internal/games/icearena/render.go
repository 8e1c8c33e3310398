package icearena

import (
	"fmt"
	"math"
	"slices"
	"strings"

	platformcore "github.com/vovakirdan/icearena/internal/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/board"
	"github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/games/icearena/session"
	"github.com/vovakirdan/icearena/internal/registry"
)

const (
	hudHeight    = 3 // two text rows and a separator
	footerHeight = 2
	cellWidth    = 2
)

type glyph struct {
	r rune
	c platformcore.Color
}

// glyphs maps renderer type names to what is drawn for them.
var glyphs = map[string]glyph{
	"PLAYER_VANILLA":    {'@', platformcore.ColorBrightWhite},
	"PLAYER_CHOCOLATE":  {'@', platformcore.ColorBrown},
	"PLAYER_STRAWBERRY": {'@', platformcore.ColorPink},

	"BANANA":    {')', platformcore.ColorBrightYellow},
	"GRAPE":     {'%', platformcore.ColorMagenta},
	"PINEAPPLE": {'&', platformcore.ColorOrange},
	"CHERRY":    {'*', platformcore.ColorRed},

	"CACTUS":        {'y', platformcore.ColorGreen},
	"CACTUS_SPIKES": {'Y', platformcore.ColorBrightRed},
	"CAMPFIRE":      {'^', platformcore.ColorOrange},
	"CAMPFIRE_OFF":  {'^', platformcore.ColorGray},
	"HOT_TILE":      {'~', platformcore.ColorRed},

	"TROLL":        {'T', platformcore.ColorGreen},
	"FLOWERPOT":    {'F', platformcore.ColorBrown},
	"SQUID":        {'S', platformcore.ColorBrightMagenta},
	"NARWHAL":      {'N', platformcore.ColorBlue},
	"NARWHAL_DASH": {'N', platformcore.ColorBrightCyan},
}

// Render draws the HUD, the arena and any overlay.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.sess == nil {
		msg := "Loading..."
		if g.err != nil {
			msg = g.err.Error()
		}
		renderOverlay(dst, []string{"Cannot start level", msg, "Esc: back  Q: quit"}, platformcore.ColorRed)
		return
	}

	t := g.sess.Board()
	needW, needH := t.Width()*cellWidth, t.Height()+hudHeight+footerHeight
	if dst.Width() < needW || dst.Height() < needH {
		renderOverlay(dst, []string{"Window too small",
			fmt.Sprintf("Need %dx%d, have %dx%d", needW, needH, dst.Width(), dst.Height())},
			platformcore.ColorYellow)
		return
	}

	g.renderHUD(dst)

	offX := (dst.Width() - needW) / 2
	offY := hudHeight
	g.renderTerrain(dst, t, offX, offY)
	g.renderEntities(dst, offX, offY)
	g.renderFooter(dst, offY+t.Height())
	g.renderStatus(dst)
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	s := g.sess
	wave := fmt.Sprintf("Wave %d/%d", min(s.Wave()+1, max(s.WaveCount(), 1)), s.WaveCount())
	line := fmt.Sprintf(" ICE ARENA | %s | %s | %s | %s", s.LevelID(), s.Mode(), wave, clockText(s.TimeRemaining()))
	dst.DrawTextWithColor(0, 0, line, platformcore.ColorBrightCyan)

	ids := []string{session.Player1, session.Player2}
	if s.Mode() == core.ModeSingle {
		ids = ids[:1]
	}
	x := 1
	for i, id := range ids {
		info := playerInfo(s, id)
		text := fmt.Sprintf("%s: %d", s.PlayerName(id), s.Score(id))
		c := platformcore.ColorGray
		if info != nil {
			c = glyphs[info.Type].c
		} else {
			text += " (out)"
		}
		if i > 0 {
			text = "  " + text
		}
		dst.DrawTextWithColor(x, 1, text, c)
		x += len([]rune(text))
	}

	dst.DrawHLine(0, 2, dst.Width(), '─', platformcore.ColorGray)
}

func playerInfo(s *session.Session, id string) *core.EntityInfo {
	if id == session.Player2 {
		return s.Player2Info()
	}
	return s.Player1Info()
}

func clockText(seconds float64) string {
	secs := int(math.Ceil(seconds))
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (g *Game) renderTerrain(dst *platformcore.Screen, t session.Terrain, offX, offY int) {
	for y := range t.Height() {
		for x := range t.Width() {
			var gl glyph
			switch t.ContentAt(x, y) {
			case board.Wall:
				gl = glyph{'█', platformcore.ColorGray}
			case board.Ice:
				gl = glyph{'▓', platformcore.ColorIce}
				if t.IsAnimating(x, y) {
					gl.r = '░'
				}
			default:
				gl = glyph{'·', platformcore.ColorGray}
				if t.IsAnimating(x, y) {
					gl = glyph{'░', platformcore.ColorIce}
				}
			}
			drawCell(dst, offX, offY, x, y, gl, true)
		}
	}
}

func drawCell(dst *platformcore.Screen, offX, offY, x, y int, gl glyph, fill bool) {
	px := offX + x*cellWidth
	py := offY + y
	dst.SetWithColor(px, py, gl.r, gl.c)
	second := ' '
	if fill && gl.r != '·' {
		second = gl.r
	}
	dst.SetWithColor(px+1, py, second, gl.c)
}

// renderEntities draws hot tiles, then items, enemies and players on top.
func (g *Game) renderEntities(dst *platformcore.Screen, offX, offY int) {
	objects := g.sess.Objects()
	for _, o := range objects {
		if o.Type == "HOT_TILE" {
			drawCell(dst, offX, offY, o.X, o.Y, glyphs[o.Type], true)
		}
	}
	for _, o := range objects {
		gl, ok := glyphs[o.Type]
		if !ok || o.Type == "HOT_TILE" {
			// ice blocks are drawn from the terrain
			continue
		}
		drawCell(dst, offX, offY, o.X, o.Y, gl, false)
	}
	for _, info := range []*core.EntityInfo{g.sess.Player1Info(), g.sess.Player2Info()} {
		if info == nil {
			continue
		}
		drawCell(dst, offX, offY, info.X, info.Y, glyphs[info.Type], false)
	}
}

func (g *Game) renderFooter(dst *platformcore.Screen, y int) {
	remaining := g.sess.RemainingFruits()
	kinds := make([]string, 0, len(remaining))
	for k := range remaining {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s x%d", strings.ToLower(k), remaining[k]))
	}
	fruit := "Fruit: none"
	if len(parts) > 0 {
		fruit = "Fruit: " + strings.Join(parts, "  ")
	}
	dst.DrawTextCenteredWithColor(y, fruit, platformcore.ColorYellow)
	dst.DrawTextCenteredWithColor(dst.Height()-1,
		"P1 WASD Space E | P2 Arrows Enter / | P pause | Ctrl+S save | Esc back | Q quit",
		platformcore.ColorGray)
}

func (g *Game) renderStatus(dst *platformcore.Screen) {
	s := g.sess
	winner, hasWinner := s.Winner()
	result := "No winner"
	switch {
	case hasWinner && winner == session.DrawMarker:
		result = "Draw!"
	case hasWinner:
		result = winner + " wins!"
	}

	switch s.Status() {
	case core.StatusPaused:
		renderOverlay(dst, []string{"Paused", "Press P to continue"}, platformcore.ColorBrightWhite)
	case core.StatusWon:
		next := "R: play again"
		if _, ok := registry.Next(s.LevelID()); ok {
			next = "R: next level"
		}
		renderOverlay(dst, []string{"Level cleared!", fmt.Sprintf("Score: %d", s.ScoreP1()), next}, platformcore.ColorBrightGreen)
	case core.StatusGameOver:
		renderOverlay(dst, []string{"Game Over", result, "R: restart  Esc: back"}, platformcore.ColorBrightRed)
	case core.StatusTimeout:
		renderOverlay(dst, []string{"Time's up", result, "R: restart  Esc: back"}, platformcore.ColorBrightYellow)
	}
}

// renderOverlay draws a bordered box with centered lines.
func renderOverlay(dst *platformcore.Screen, lines []string, c platformcore.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := dst.Bounds().Centered(w+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)
	for i, l := range lines {
		dst.DrawTextCenteredWithColor(box.Y+1+i, l, c)
	}
}
