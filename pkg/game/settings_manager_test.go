package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	m, err := gdata.Open(gdata.Config{AppName: "tiltmaze_test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if !s.ShowHUD {
		t.Error("ShowHUD: got false, want true")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil, nil)

	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should not fail: %v", err)
	}
	if sm.GetSettings().Fullscreen {
		t.Error("degraded Load() should reset to defaults")
	}
}

// TestSettingsLoadSave 测试保存后重新加载
func TestSettingsLoadSave(t *testing.T) {
	m := openTestGdata(t)

	sm := NewSettingsManager(m, nil)
	sm.SetFullscreen(true)
	sm.SetShowHUD(false)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(m, nil)
	s := reloaded.GetSettings()
	if !s.Fullscreen {
		t.Error("Fullscreen should persist")
	}
	if s.ShowHUD {
		t.Error("ShowHUD should persist")
	}
}

// TestSettingsLoadCorrupted 数据损坏时回退默认值
func TestSettingsLoadCorrupted(t *testing.T) {
	m := openTestGdata(t)
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("fullscreen: [")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm := NewSettingsManager(m, nil)
	if err := sm.Load(); err == nil {
		t.Error("Load() should report corrupted data")
	}
	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("corrupted data should fall back to defaults, got %+v", sm.GetSettings())
	}
}
