package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/hostage-chess/internal/config"
	"github.com/lgbarn/hostage-chess/internal/errors"
	"github.com/lgbarn/hostage-chess/internal/game"
	"github.com/lgbarn/hostage-chess/internal/testutil"
)

// playedGame returns a standard game after 1. e4 d5 2. exd5.
func playedGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.New(nil, game.WithGameID("report-test"))
	testutil.AssertNoError(t, err)
	for _, m := range [][2]string{{"e2", "e4"}, {"d7", "d5"}, {"e4", "d5"}} {
		if res := g.Move(m[0], m[1]); !res.OK() {
			t.Fatalf("Move(%s, %s) = %v", m[0], m[1], res)
		}
	}
	return g
}

func TestBoardRows_StartingPosition(t *testing.T) {
	g, err := game.New(nil)
	testutil.AssertNoError(t, err)

	rows := BoardRows(g.Board())

	want := []string{
		"r n b q k b n r",
		"p p p p p p p p",
		". . . . . . . .",
		". . . . . . . .",
		". . . . . . . .",
		". . . . . . . .",
		"P P P P P P P P",
		"R N B Q K B N R",
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("BoardRows mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderBoard_Labels(t *testing.T) {
	g, err := game.New(nil)
	testutil.AssertNoError(t, err)

	var buf bytes.Buffer
	testutil.AssertNoError(t, RenderBoard(&buf, g.Board()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	testutil.AssertEqual(t, len(lines), 9)
	testutil.AssertEqual(t, lines[0], "8 r n b q k b n r")
	testutil.AssertEqual(t, lines[7], "1 R N B Q K B N R")
	testutil.AssertEqual(t, lines[8], "  a b c d e f g h")
}

func TestFormatRecord(t *testing.T) {
	g := playedGame(t)
	moves := g.Moves()
	testutil.AssertEqual(t, len(moves), 3)

	testutil.AssertEqual(t, FormatRecord(moves[0]), "1. WP5 e2-e4")
	testutil.AssertEqual(t, FormatRecord(moves[2]), "3. WP5 e4-d5 xBP4")
}

func TestTextWriter_WriteGame(t *testing.T) {
	g := playedGame(t)

	var buf bytes.Buffer
	cfg := config.NewOutputConfig()
	cfg.ShowMoves = true

	writer := NewTextWriter(&buf, cfg)
	testutil.AssertNoError(t, writer.WriteGame(g, nil))

	out := buf.String()
	testutil.AssertContains(t, out, "game report-test: playing after 3 plies (0 rejected, 0 rolled back)")
	testutil.AssertContains(t, out, "  2. BP4 d7-d5\n")
	testutil.AssertContains(t, out, "white holds BP4")
	testutil.AssertContains(t, out, "5 . . . P . . . .")
	testutil.AssertFalse(t, strings.Contains(out, "black holds"), "black holds nothing")
}

func TestTextWriter_ErrorChain(t *testing.T) {
	g := playedGame(t)
	playErr := errors.Wrap(errors.ErrNotYourTurn, "move 4")

	tests := []struct {
		name       string
		showErrors bool
		want       bool
	}{
		{"errors shown", true, true},
		{"errors hidden", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := config.NewOutputConfig()
			cfg.ShowBoard = false
			cfg.ShowErrors = tt.showErrors

			testutil.AssertNoError(t, NewTextWriter(&buf, cfg).WriteGame(g, playErr))
			testutil.AssertEqual(t, strings.Contains(buf.String(), "caused by: not this team's turn"), tt.want)
		})
	}
}

func TestWriteErrorChain(t *testing.T) {
	var buf bytes.Buffer
	err := errors.Wrap(errors.Wrap(errors.ErrGameOver, "inner"), "outer")

	testutil.AssertNoError(t, WriteErrorChain(&buf, err))

	want := "error: outer: inner: game is over\n" +
		"  caused by: inner: game is over\n" +
		"  caused by: game is over\n"
	testutil.AssertEqual(t, buf.String(), want)

	buf.Reset()
	testutil.AssertNoError(t, WriteErrorChain(&buf, nil))
	testutil.AssertEqual(t, buf.Len(), 0)
}

func TestJSONWriter_WriteGame(t *testing.T) {
	g := playedGame(t)

	var buf bytes.Buffer
	cfg := config.NewOutputConfig()
	cfg.ShowMoves = true

	writer := NewJSONWriter(&buf, cfg)
	testutil.AssertNoError(t, writer.WriteGame(g, nil))
	testutil.AssertEqual(t, buf.Len(), 0, "JSON is buffered until Flush")
	testutil.AssertNoError(t, writer.Close())

	var got JSONOutput
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &got))
	testutil.AssertEqual(t, len(got.Games), 1)

	jg := got.Games[0]
	testutil.AssertEqual(t, jg.ID, "report-test")
	testutil.AssertEqual(t, jg.Status, "playing")
	testutil.AssertEqual(t, jg.Plies, 3)
	testutil.AssertEqual(t, jg.Winner, "")
	testutil.AssertEqual(t, len(jg.Moves), 3)
	testutil.AssertEqual(t, jg.Moves[2].Kind, "attack")
	testutil.AssertEqual(t, jg.Moves[2].Captured, "BP4")
	testutil.AssertEqual(t, jg.Moves[1].Team, "black")
	testutil.AssertEqual(t, len(jg.FinalHash), 16)
	testutil.AssertEqual(t, len(jg.Board), 8)

	wantHostages := map[string][]string{"white": {"BP4"}, "black": {}}
	if diff := cmp.Diff(wantHostages, jg.Hostages); diff != "" {
		t.Errorf("Hostages mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONWriter_ErrorAndOptionalFields(t *testing.T) {
	g := playedGame(t)

	var buf bytes.Buffer
	cfg := config.NewOutputConfig()
	cfg.ShowBoard = false

	writer := NewJSONWriter(&buf, cfg)
	testutil.AssertNoError(t, writer.WriteGame(g, errors.ErrGameOver))
	testutil.AssertNoError(t, writer.Flush())

	out := buf.String()
	testutil.AssertContains(t, out, `"error": "game is over"`)
	testutil.AssertFalse(t, strings.Contains(out, `"moves"`), "moves omitted without ShowMoves")
	testutil.AssertFalse(t, strings.Contains(out, `"board"`), "board omitted without ShowBoard")
}

func TestJSONWriter_FlushEmpty(t *testing.T) {
	var buf bytes.Buffer
	writer := NewJSONWriter(&buf, config.NewOutputConfig())
	testutil.AssertNoError(t, writer.Flush())
	testutil.AssertNoError(t, writer.Close())
	testutil.AssertEqual(t, buf.Len(), 0)
}

func TestOutputGamesJSON(t *testing.T) {
	first := playedGame(t)
	second, err := game.New(nil, game.WithGameID("fresh"))
	testutil.AssertNoError(t, err)

	var buf bytes.Buffer
	testutil.AssertNoError(t, OutputGamesJSON(&buf, []*game.Game{first, second}, config.NewOutputConfig()))

	var got JSONOutput
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &got))
	testutil.AssertEqual(t, len(got.Games), 2)
	testutil.AssertEqual(t, got.Games[1].ID, "fresh")
	testutil.AssertEqual(t, got.Games[1].Plies, 0)
}

func TestNewGameWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewOutputConfig()

	if _, ok := NewGameWriter(&buf, cfg).(*TextWriter); !ok {
		t.Error("default writer should be TextWriter")
	}
	cfg.JSONFormat = true
	if _, ok := NewGameWriter(&buf, cfg).(*JSONWriter); !ok {
		t.Error("JSONFormat writer should be JSONWriter")
	}
}
