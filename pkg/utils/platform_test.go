//go:build !mobile

package utils

import "testing"

// TestIsMobile_Desktop 测试桌面端编译时 IsMobile() 返回 false
func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv(MobileEmulateEnv, "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}
	if !CanHover() {
		t.Error("desktop pointer should be hover-capable")
	}
}

func TestIsMobile_Emulated(t *testing.T) {
	t.Setenv(MobileEmulateEnv, "1")
	if !IsMobile() {
		t.Error("IsMobile() should honour " + MobileEmulateEnv)
	}
	if CanHover() {
		t.Error("emulated mobile should not be hover-capable")
	}
}
