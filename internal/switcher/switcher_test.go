package switcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/dpswitch/internal/model"
	"github.com/jmylchreest/dpswitch/internal/status"
)

// fakeController records calls and echoes them like xrandr.Client does.
type fakeController struct {
	mu       sync.Mutex
	active   []string
	failOn   map[string]bool
	calls    []string
	inFlight int
	overlap  bool
	delay    time.Duration
}

func (f *fakeController) enter() {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > 1 {
		f.overlap = true
	}
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
}

func (f *fakeController) leave(call string) {
	f.mu.Lock()
	f.inFlight--
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeController) do(log *status.Log, call string) error {
	f.enter()
	defer f.leave(call)
	log.Append("xrandr "+call, false)
	if f.failOn[call] {
		log.Append("failed: "+call, true)
		return errors.New(call)
	}
	return nil
}

func (f *fakeController) Active(_ context.Context, _ *status.Log) []string {
	f.enter()
	defer f.leave("query")
	return f.active
}

func (f *fakeController) Enable(_ context.Context, log *status.Log, s model.DisplaySetting) error {
	return f.do(log, "--output "+s.Port()+" --mode "+s.Resolution+" --rate "+s.Rate)
}

func (f *fakeController) SetPrimary(_ context.Context, log *status.Log, port string) error {
	return f.do(log, "--output "+port+" --primary")
}

func (f *fakeController) Disable(_ context.Context, log *status.Log, port string) error {
	return f.do(log, "--output "+port+" --off")
}

func dockLayout() model.Layout {
	return model.Layout{Name: "dock", Settings: []model.DisplaySetting{
		setting(external, true),
		setting(side, false),
	}}
}

func TestSwitch_Order(t *testing.T) {
	ctl := &fakeController{active: []string{"eDP-1", "DP-2"}}
	s := New(ctl, nil)

	res := s.Switch(context.Background(), dockLayout())

	assert.Equal(t, []string{
		"query",
		"--output HDMI-1 --mode 1920x1080 --rate 60",
		"--output DP-2 --mode 1920x1080 --rate 60",
		"--output HDMI-1 --primary",
		"--output eDP-1 --off",
	}, ctl.calls)

	assert.Equal(t, "dock", res.Layout)
	assert.Len(t, res.ID, 26)
	assert.False(t, res.Log.Failed())
	assert.Equal(t, "Mode: dock\n"+
		"xrandr --output HDMI-1 --mode 1920x1080 --rate 60\n"+
		"xrandr --output DP-2 --mode 1920x1080 --rate 60\n"+
		"xrandr --output HDMI-1 --primary\n"+
		"xrandr --output eDP-1 --off", res.Log.Text())
}

func TestSwitch_ContinuesAfterFailure(t *testing.T) {
	ctl := &fakeController{
		active: []string{"eDP-1"},
		failOn: map[string]bool{"--output HDMI-1 --mode 1920x1080 --rate 60": true},
	}
	s := New(ctl, nil)

	res := s.Switch(context.Background(), dockLayout())

	assert.True(t, res.Log.Failed())
	assert.Contains(t, ctl.calls, "--output DP-2 --mode 1920x1080 --rate 60")
	assert.Contains(t, ctl.calls, "--output HDMI-1 --primary")
	assert.Contains(t, ctl.calls, "--output eDP-1 --off")

	lines := res.Log.Lines()
	require.Len(t, lines, 6)
	assert.Equal(t, status.Line{Text: "failed: --output HDMI-1 --mode 1920x1080 --rate 60", IsError: true}, lines[2])
}

func TestSwitch_FreshLogPerSwitch(t *testing.T) {
	ctl := &fakeController{
		failOn: map[string]bool{"--output HDMI-1 --primary": true},
	}
	s := New(ctl, nil)

	first := s.Switch(context.Background(), dockLayout())
	assert.True(t, first.Log.Failed())

	mobile := model.Layout{Name: "mobile", Settings: []model.DisplaySetting{setting(laptop, false)}}
	second := s.Switch(context.Background(), mobile)
	assert.False(t, second.Log.Failed())
	assert.Equal(t, "Mode: mobile\nxrandr --output eDP-1 --mode 1920x1080 --rate 60", second.Log.Text())
}

func TestSwitch_NoPrimary(t *testing.T) {
	ctl := &fakeController{}
	s := New(ctl, nil)

	layout := model.Layout{Name: "plain", Settings: []model.DisplaySetting{setting(laptop, false)}}
	s.Switch(context.Background(), layout)

	assert.Equal(t, []string{"query", "--output eDP-1 --mode 1920x1080 --rate 60"}, ctl.calls)
}

func TestSwitch_OnComplete(t *testing.T) {
	ctl := &fakeController{}
	s := New(ctl, nil)

	var got []Result
	s.OnComplete(func(r Result) { got = append(got, r) })

	res := s.Switch(context.Background(), dockLayout())
	require.Len(t, got, 1)
	assert.Equal(t, res.ID, got[0].ID)
	assert.Equal(t, res.Log.Text(), got[0].Log.Text())
}

func TestSwitch_Serialized(t *testing.T) {
	ctl := &fakeController{active: []string{"eDP-1"}, delay: time.Millisecond}
	s := New(ctl, nil)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Switch(context.Background(), dockLayout())
		}()
	}
	wg.Wait()

	assert.False(t, ctl.overlap, "controller calls from different switches interleaved")
	assert.Len(t, ctl.calls, 4*5)
}
