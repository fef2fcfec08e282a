// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	dbus "github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-devicekeys/common/dconfig"
	"github.com/linuxdeepin/dde-devicekeys/common/devconf"
	"github.com/linuxdeepin/dde-devicekeys/common/sysfs"
	"github.com/linuxdeepin/dde-devicekeys/devicesettings1"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

//go:generate dbusutil-gen em -type Manager

type Manager struct {
	service    *dbusutil.Service
	sysSigLoop *dbusutil.SignalLoop
	store      sysfs.Store

	handler  *KeyHandler
	bus      *broadcastBus
	session  *loginSession
	launcher *launcherController
	keyguard *keyguardController
	power    *powerController
	torch    *torchController
	vibrator *timedOutputVibrator
	sensor   *sensorProxyController
	media    *mediaPlayerController
	reader   *inputReader

	sessionWatcher *sessionWatcher
	confWatcher    *devconf.Watcher
	settings       *dconfig.DConfig
	cancelTorch    func()

	// nolint
	signals *struct {
		Broadcast struct {
			action string
		}
		GestureHandled struct {
			scancode uint32
			action   string
		}
	}
}

func newManager(service *dbusutil.Service) *Manager {
	return &Manager{
		service: service,
		store:   sysfs.NewStore(),
	}
}

func (*Manager) GetInterfaceName() string {
	return dbusInterface
}

// hapticPreference reads the haptic switch owned by the settings service.
type hapticPreference struct {
	enabled dconfig.Bool
}

func newHapticPreference(store dconfig.Store) *hapticPreference {
	p := &hapticPreference{}
	p.enabled.Default = true
	p.enabled.Bind(store, devicesettings1.KeyHapticFeedback)
	return p
}

func (p *hapticPreference) HapticFeedbackEnabled() bool {
	return p.enabled.Get()
}

func (m *Manager) openSettings() dconfig.Store {
	settings, err := dconfig.NewDConfig(devicesettings1.DConfigAppID, devicesettings1.DConfigName, "")
	if err != nil {
		logger.Warning("failed to open settings, use defaults:", err)
		return dconfig.NewMemoryStore(nil)
	}
	m.settings = settings
	return settings
}

func (m *Manager) init(conf *devconf.Config, configFile string) {
	sessionConn := m.service.Conn()
	systemConn, err := dbus.SystemBus()
	if err != nil {
		logger.Warning("failed to connect system bus:", err)
	}

	opts := Options{
		ProximityTimeout: conf.Proximity.Timeout,
		HapticDuration:   conf.Vibrator.Duration,
		OnHandled:        m.emitGestureHandled,
	}

	if systemConn != nil {
		m.sysSigLoop = dbusutil.NewSignalLoop(systemConn, 10)
		m.sysSigLoop.Start()

		m.session, err = newLoginSession(sessionConn, systemConn)
		if err != nil {
			logger.Warning("failed to get login session:", err)
		}

		m.sensor = newSensorProxyController(m.sysSigLoop, conf.Proximity.MaxRange)
		err = m.sensor.start()
		if err != nil {
			logger.Warning("failed to watch proximity sensor:", err)
		}
		opts.Sensor = m.sensor
	}

	if m.session != nil {
		m.launcher = newLauncherController(sessionConn, m.session)
		m.keyguard = newKeyguardController(m.session, conf.Keyguard.Secure)
		m.power = newPowerController(m.store, m.session, conf.Power.Backlight)
	} else {
		m.launcher = newLauncherController(sessionConn, nil)
		m.keyguard = newKeyguardController(nil, conf.Keyguard.Secure)
		m.power = newPowerController(m.store, nil, conf.Power.Backlight)
	}
	m.launcher.setCommand(IntentActionStillImageCamera, conf.Camera.Command)

	m.bus = newBroadcastBus(m.emitBroadcast)
	m.torch = newTorchController(m.store, conf.Torch.LED)
	var torchCh <-chan string
	torchCh, m.cancelTorch = m.bus.RegisterReceiver(BroadcastActionToggleTorch)
	go m.torch.run(torchCh)

	m.vibrator = newTimedOutputVibrator(m.store, conf.Vibrator.Node)
	m.media = newMediaPlayerController(sessionConn, systemConn)

	opts.Launcher = m.launcher
	opts.Keyguard = m.keyguard
	opts.Power = m.power
	opts.Audio = m.media
	opts.Broadcast = m.bus
	opts.Torch = m.torch
	opts.Vibrator = m.vibrator
	opts.Preferences = newHapticPreference(m.openSettings())

	m.handler = NewKeyHandler(opts)
	m.handler.Start()

	if m.sysSigLoop != nil {
		m.sessionWatcher = newSessionWatcher(m.sysSigLoop, m.session, m.handler)
		err = m.sessionWatcher.start()
		if err != nil {
			logger.Warning("failed to watch login session:", err)
		}
	}

	m.reader = newInputReader(m.handler.HandleKeyEvent)
	if n := m.reader.start(conf.Input.Devices); n == 0 {
		logger.Info("no gesture input device found, only D-Bus key events are handled")
	}

	m.confWatcher, err = devconf.NewWatcher(configFile, m.applyConfig)
	if err != nil {
		logger.Warning("failed to watch config:", err)
	}
}

func (m *Manager) applyConfig(conf *devconf.Config) {
	logger.Info("config reloaded")
	m.handler.SetProximityTimeout(conf.Proximity.Timeout)
	m.handler.SetHapticDuration(conf.Vibrator.Duration)
	m.launcher.setCommand(IntentActionStillImageCamera, conf.Camera.Command)
	m.keyguard.setSecure(conf.Keyguard.Secure)
	m.power.setBacklight(conf.Power.Backlight)
	m.torch.setLED(conf.Torch.LED)
	m.vibrator.setNode(conf.Vibrator.Node)
}

func (m *Manager) emitBroadcast(action string) {
	err := m.service.Emit(m, "Broadcast", action)
	if err != nil {
		logger.Warning(err)
	}
}

func (m *Manager) emitGestureHandled(action ScancodeAction) {
	err := m.service.Emit(m, "GestureHandled", uint32(action.Scancode), action.Kind.String())
	if err != nil {
		logger.Warning(err)
	}
}

func (m *Manager) destroy() {
	if m.confWatcher != nil {
		m.confWatcher.Stop()
		m.confWatcher = nil
	}
	if m.reader != nil {
		m.reader.stop()
	}
	if m.sessionWatcher != nil {
		m.sessionWatcher.stop()
	}
	if m.handler != nil {
		m.handler.Stop()
	}
	if m.cancelTorch != nil {
		m.cancelTorch()
	}
	if m.sensor != nil {
		m.sensor.stop()
	}
	if m.settings != nil {
		m.settings.Destroy()
	}
	if m.sysSigLoop != nil {
		m.sysSigLoop.Stop()
	}
}
