package config

import "testing"

func TestSettings_DefaultDynamicMatchesBase(t *testing.T) {
	s := Default()

	if s.ShipSpeed != s.InitialShipSpeed || s.EnemySpeed != s.InitialEnemySpeed {
		t.Errorf("dynamic speeds should start at base values")
	}
	if s.FleetDirection != 1 {
		t.Errorf("expected fleet direction 1, got %d", s.FleetDirection)
	}
	if s.EnemyPoints != 50 {
		t.Errorf("expected 50 points, got %d", s.EnemyPoints)
	}
}

func TestSettings_IncreaseSpeed(t *testing.T) {
	s := Default()
	baseEnemy := s.EnemySpeed

	s.IncreaseSpeed()

	if want := baseEnemy * 1.1; s.EnemySpeed != want {
		t.Errorf("expected enemy speed %v, got %v", want, s.EnemySpeed)
	}
	if s.EnemyPoints != 75 {
		t.Errorf("expected 75 points, got %d", s.EnemyPoints)
	}

	s.IncreaseSpeed()
	if s.EnemyPoints != 112 {
		t.Errorf("expected points truncated to 112, got %d", s.EnemyPoints)
	}
}

func TestSettings_IncreaseSpeedCapsPoints(t *testing.T) {
	s := Default()
	for range 200 {
		s.IncreaseSpeed()
	}
	if s.EnemyPoints <= 0 || s.EnemyPoints > maxPoints {
		t.Errorf("points out of range: %d", s.EnemyPoints)
	}
}

func TestSettings_ResetDynamic(t *testing.T) {
	s := Default()
	s.IncreaseSpeed()
	s.FleetDirection = -1

	s.ResetDynamic()

	if s.EnemySpeed != s.InitialEnemySpeed || s.EnemyPoints != s.InitialEnemyPoints {
		t.Error("reset should restore base values")
	}
	if s.FleetDirection != 1 {
		t.Errorf("expected fleet direction 1 after reset, got %d", s.FleetDirection)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvBgColor, "#000000")
	t.Setenv(EnvShipLimit, "5")
	t.Setenv(EnvBulletsAllowed, "not-a-number")

	s, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if s.BgColor.R != 0 || s.BgColor.G != 0 || s.BgColor.B != 0 {
		t.Errorf("expected black background, got %+v", s.BgColor)
	}
	if s.ShipLimit != 5 {
		t.Errorf("expected ship limit 5, got %d", s.ShipLimit)
	}
	if s.BulletsAllowed != 3 {
		t.Errorf("invalid value should keep default, got %d", s.BulletsAllowed)
	}
}

func TestFromEnv_InvalidColor(t *testing.T) {
	t.Setenv(EnvBgColor, "green-ish")

	if _, err := FromEnv(); err == nil {
		t.Error("expected error for invalid color")
	}
}

func TestPauseFrames(t *testing.T) {
	if got := PauseFrames(TargetFrameTime); got != 30 {
		t.Errorf("expected 30 frames, got %d", got)
	}
	if got := PauseFrames(0); got != 0 {
		t.Errorf("expected 0 for zero frame time, got %d", got)
	}
}
