// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

type fakeSensor struct {
	mu          sync.Mutex
	maxRange    float64
	registerErr error
	active      []SensorListener
	registered  int
	unregisters int
}

func (s *fakeSensor) MaximumRange() float64 {
	return s.maxRange
}

func (s *fakeSensor) RegisterListener(l SensorListener) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registerErr != nil {
		return s.registerErr
	}
	s.registered++
	s.active = append(s.active, l)
	return nil
}

func (s *fakeSensor) UnregisterListener(l SensorListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unregisters++
	for i, active := range s.active {
		if active == l {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return
		}
	}
}

func (s *fakeSensor) listeners() []SensorListener {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SensorListener(nil), s.active...)
}

func (s *fakeSensor) counts() (registered, unregistered int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registered, s.unregisters
}

// emit delivers distance to every listener registered right now.
func (s *fakeSensor) emit(distance float64) {
	for _, l := range s.listeners() {
		l.OnSensorChanged(distance)
	}
}

type fakeLauncher struct {
	mu       sync.Mutex
	started  []*ActivityIntent
	dismiss  int
	notFound bool
}

func (l *fakeLauncher) StartActivity(intent *ActivityIntent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.notFound {
		return fmt.Errorf("%s: %w", intent.Action, ErrActivityNotFound)
	}
	l.started = append(l.started, intent)
	return nil
}

func (l *fakeLauncher) DismissKeyguardOnNextActivity() error {
	l.mu.Lock()
	l.dismiss++
	l.mu.Unlock()
	return nil
}

func (l *fakeLauncher) startedIntents() []*ActivityIntent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*ActivityIntent(nil), l.started...)
}

type fakeKeyguard struct {
	mu     sync.Mutex
	secure bool
	locked bool
}

func (k *fakeKeyguard) IsKeyguardSecure() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.secure
}

func (k *fakeKeyguard) IsKeyguardLocked() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.locked
}

func (k *fakeKeyguard) set(secure, locked bool) {
	k.mu.Lock()
	k.secure = secure
	k.locked = locked
	k.mu.Unlock()
}

type fakePower struct {
	mu       sync.Mutex
	screenOn bool
	wakeUps  []time.Time
}

func (p *fakePower) IsScreenOn() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screenOn
}

func (p *fakePower) WakeUp(when time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wakeUps = append(p.wakeUps, when)
	p.screenOn = true
}

func (p *fakePower) setScreenOn(on bool) {
	p.mu.Lock()
	p.screenOn = on
	p.mu.Unlock()
}

func (p *fakePower) wakeUpCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.wakeUps)
}

type fakeAudio struct {
	mu      sync.Mutex
	events  []MediaKeyEvent
	downErr error
}

func (a *fakeAudio) DispatchMediaKeyEventUnderWakelock(ev MediaKeyEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ev.Action == KeyDown && a.downErr != nil {
		return a.downErr
	}
	a.events = append(a.events, ev)
	return nil
}

func (a *fakeAudio) dispatched() []MediaKeyEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]MediaKeyEvent(nil), a.events...)
}

type fakeTorch struct {
	available bool
}

func (t *fakeTorch) Available() bool {
	return t.available
}

type fakeVibrator struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (v *fakeVibrator) Vibrate(d time.Duration) error {
	v.mu.Lock()
	v.calls = append(v.calls, d)
	v.mu.Unlock()
	return nil
}

type fakePreferences bool

func (p fakePreferences) HapticFeedbackEnabled() bool {
	return bool(p)
}

type testEnv struct {
	handler  *KeyHandler
	clock    *clock.Mock
	sensor   *fakeSensor
	launcher *fakeLauncher
	keyguard *fakeKeyguard
	power    *fakePower
	audio    *fakeAudio
	bus      *broadcastBus
	torch    *fakeTorch
	vibrator *fakeVibrator

	mu      sync.Mutex
	handled []ScancodeAction
}

func newTestEnv(t *testing.T) *testEnv {
	e := &testEnv{
		clock:    clock.NewMock(),
		sensor:   &fakeSensor{maxRange: 5},
		launcher: &fakeLauncher{},
		keyguard: &fakeKeyguard{},
		power:    &fakePower{screenOn: true},
		audio:    &fakeAudio{},
		bus:      newBroadcastBus(nil),
		torch:    &fakeTorch{available: true},
		vibrator: &fakeVibrator{},
	}
	e.handler = NewKeyHandler(Options{
		Launcher:         e.launcher,
		Keyguard:         e.keyguard,
		Power:            e.power,
		Audio:            e.audio,
		Broadcast:        e.bus,
		Torch:            e.torch,
		Sensor:           e.sensor,
		Vibrator:         e.vibrator,
		Preferences:      fakePreferences(true),
		Clock:            e.clock,
		ProximityTimeout: time.Second,
		OnHandled: func(action ScancodeAction) {
			e.mu.Lock()
			e.handled = append(e.handled, action)
			e.mu.Unlock()
		},
	})
	e.handler.Start()
	t.Cleanup(e.handler.Stop)
	return e
}

func (e *testEnv) sync() {
	e.handler.loop.waitIdle()
}

func (e *testEnv) keyUp(scancode Scancode) bool {
	return e.handler.HandleKeyEvent(KeyEvent{Scancode: scancode, Action: KeyUp, Time: e.clock.Now()})
}

func (e *testEnv) keyDown(scancode Scancode) bool {
	return e.handler.HandleKeyEvent(KeyEvent{Scancode: scancode, Action: KeyDown, Time: e.clock.Now()})
}

func (e *testEnv) handledActions() []ScancodeAction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]ScancodeAction(nil), e.handled...)
}
