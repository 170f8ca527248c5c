package wm

import (
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/dtwm/dtwm/internal/config"
	"github.com/dtwm/dtwm/internal/rules"
	"github.com/dtwm/dtwm/internal/util"
)

// WatchConfig watches the configuration file and applies it live on
// change. It watches the directory rather than the file, since editors
// typically replace the file by rename.
func (wm *WM) WatchConfig() error {
	if wm.cfgPath == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(wm.cfgPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}
	base := filepath.Base(wm.cfgPath)
	go func() {
		defer watcher.Close()
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				wm.proactive <- wm.reloadConfig
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				wm.log.Warnf("config watcher: %v", err)
			}
		}
	}()
	return nil
}

// reloadConfig runs on the dispatch goroutine. A broken file is
// reported and the running configuration kept.
func (wm *WM) reloadConfig() {
	cfg, err := config.Load(wm.cfgPath)
	if err != nil {
		wm.log.Errorf("config reload rejected: %v", err)
		return
	}
	if err := wm.applyConfig(cfg); err != nil {
		wm.log.Errorf("config reload rejected: %v", err)
		return
	}
	wm.log.Infof("configuration reloaded from %s", wm.cfgPath)
}

// applyConfig swaps in cfg. Bindings are resolved first so a file with
// an unparseable chord leaves the running configuration, including all
// grabbed keys, fully intact.
func (wm *WM) applyConfig(cfg *config.Config) error {
	keys, buttons, err := wm.resolveBindings(cfg)
	if err != nil {
		return err
	}
	wm.cfg = cfg
	wm.keys = keys
	wm.buttons = buttons
	if level, err := util.ParseLevel(cfg.LogLevel); err == nil {
		wm.log.SetLevel(level)
	}
	wm.rules = rules.Compile(cfg)
	wm.grabKeys()
	for _, m := range wm.mons {
		m.SetBarPos(cfg.BarHeight)
	}
	wm.updateBars()
	wm.focus(nil)
	wm.arrange(nil)
	return nil
}

// RunStartupHook executes the autostart script, if one exists. With
// wait set the manager blocks until the script exits, otherwise the
// script runs in the background and a goroutine reaps it.
func (wm *WM) RunStartupHook() {
	path := wm.cfg.Autostart.Path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		path = filepath.Join(home, ".config", "dtwm", "autostart.sh")
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	cmd := exec.Command(path)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if wm.cfg.Autostart.Wait {
		if err := cmd.Run(); err != nil {
			wm.log.Warnf("autostart %s: %v", path, err)
		}
		return
	}
	if err := cmd.Start(); err != nil {
		wm.log.Warnf("autostart %s: %v", path, err)
		return
	}
	log := wm.log
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debugf("autostart exited: %v", err)
		}
	}()
}
