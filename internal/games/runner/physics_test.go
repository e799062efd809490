package runner

import "testing"

func TestIntegrateFloorClamp(t *testing.T) {
	p := Player{X: 50, Y: 289, VelocityY: 5, Width: 30, Height: 30, IsJumping: true}
	Integrate(&p, 0.5, 290)

	if p.Y != 290 {
		t.Errorf("Y = %v, expected clamp to 290", p.Y)
	}
	if p.VelocityY != 0 {
		t.Errorf("VelocityY = %v, expected 0 on landing", p.VelocityY)
	}
	if p.IsJumping {
		t.Error("landing should end the jump")
	}
}

func TestIntegrateCeilingClamp(t *testing.T) {
	p := Player{Y: 3, VelocityY: -12, Width: 30, Height: 30, IsJumping: true}
	Integrate(&p, 0.5, 290)

	if p.Y != 0 {
		t.Errorf("Y = %v, expected clamp to 0", p.Y)
	}
	if p.VelocityY != 0 {
		t.Errorf("VelocityY = %v, expected 0 at ceiling", p.VelocityY)
	}
	if !p.IsJumping {
		t.Error("ceiling must not end the jump")
	}
}

func TestIntegrateFreeFall(t *testing.T) {
	p := Player{Y: 100, VelocityY: 0}
	Integrate(&p, 0.5, 290)
	if p.VelocityY != 0.5 || p.Y != 100.5 {
		t.Errorf("after one frame: Y=%v vy=%v, expected 100.5 and 0.5", p.Y, p.VelocityY)
	}
}

func TestJumpGuard(t *testing.T) {
	p := Player{Y: 290}

	if !Jump(&p, -12) {
		t.Fatal("grounded jump should fire")
	}
	if p.VelocityY != -12 || !p.IsJumping {
		t.Errorf("after jump: vy=%v jumping=%v", p.VelocityY, p.IsJumping)
	}

	Integrate(&p, 0.5, 290)
	vy := p.VelocityY
	if Jump(&p, -12) {
		t.Error("mid-air jump should be ignored")
	}
	if p.VelocityY != vy {
		t.Errorf("ignored jump changed velocity: %v -> %v", vy, p.VelocityY)
	}
}

func TestJumpArcStaysInBounds(t *testing.T) {
	const floor = 290.0
	p := Player{Y: floor, Height: 30}
	Jump(&p, -12)

	landed := false
	for i := 0; i < 200; i++ {
		Integrate(&p, 0.5, floor)
		if p.Y < 0 || p.Y > floor {
			t.Fatalf("frame %d: Y = %v out of [0, %v]", i, p.Y, floor)
		}
		if !p.IsJumping {
			landed = true
			break
		}
	}
	if !landed {
		t.Error("player never landed")
	}
	if p.Y != floor {
		t.Errorf("landed at Y = %v, expected %v", p.Y, floor)
	}
}
