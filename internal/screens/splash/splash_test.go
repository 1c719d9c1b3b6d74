package splash

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lkpd/internal/router"
	"github.com/abhisek/lkpd/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd { return nil }

func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }

func (s *stubScreen) View(int, int) string { return "generator" }

func (s *stubScreen) Title() string { return "Generator" }

func newTestSplash() (*Screen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(s *Screen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = s.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestBannerAppearsAfterDelay(t *testing.T) {
	s, _ := newTestSplash()
	if strings.Contains(s.View(80, 24), "Dibuat untuk Guru Indonesia.") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(s, 4)
	if s.elapsed != bannerAt {
		t.Errorf("elapsed = %v, want %v", s.elapsed, bannerAt)
	}
	if !strings.Contains(s.View(80, 24), "Dibuat untuk Guru Indonesia.") {
		t.Error("tagline should be visible after the delay")
	}
}

func TestKeypressSkipsToGenerator(t *testing.T) {
	s, calls := newTestSplash()
	sendTicks(s, 2)

	_, cmd := s.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger the transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Generator" {
		t.Errorf("replacement title = %q", msg.Screen.Title())
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestAutoTransitionAfterAnimation(t *testing.T) {
	s, calls := newTestSplash()

	cmd := sendTicks(s, int(totalDur/tickInterval))
	if cmd == nil {
		t.Fatal("expected transition command at the end of the animation")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestTransitionHappensOnce(t *testing.T) {
	s, calls := newTestSplash()
	s.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("factory calls = %d, want 1", *calls)
	}
}

func TestCompactBanner(t *testing.T) {
	if got := RenderBanner(30); !strings.Contains(got, bannerCompact) {
		t.Errorf("narrow banner = %q", got)
	}
	if got := RenderBanner(80); !strings.Contains(got, "██████╔╝") {
		t.Error("wide banner should use block art")
	}
}
