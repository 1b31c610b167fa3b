package components

import (
	"auto-reference/core/assets"
	"auto-reference/core/scene"
)

// Transform places a node in the world.
type Transform struct {
	scene.Base
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Collider is the physical shape of a node.
type Collider struct {
	scene.Base
	Radius float64 `yaml:"radius"`
}

// Barrel is a weapon barrel.
type Barrel struct {
	scene.Base
	Caliber int `yaml:"caliber"`
}

// Muzzle marks the point projectiles leave from.
type Muzzle struct {
	scene.Base
}

// Damageable is implemented by components that take damage.
type Damageable interface {
	scene.Component
	ApplyDamage(amount int)
}

// Health tracks hit points.
type Health struct {
	scene.Base
	Max     int `yaml:"max"`
	Current int `yaml:"current"`
}

func (h *Health) ApplyDamage(amount int) {
	h.Current = max(h.Current-amount, 0)
}

// Shield absorbs damage before Health.
type Shield struct {
	scene.Base
	Strength int `yaml:"strength"`
}

func (s *Shield) ApplyDamage(amount int) {
	s.Strength = max(s.Strength-amount, 0)
}

// WeaponStats is the asset describing a weapon.
type WeaponStats struct {
	Damage   int     `yaml:"damage"`
	Range    float64 `yaml:"range"`
	Cooldown float64 `yaml:"cooldown"`
}

// Palette is the asset describing team colours.
type Palette struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
}

// Turret aims barrels at targets.
type Turret struct {
	scene.Base
	Transform *Transform   `autoref:"own" yaml:"transform"`
	Barrels   []*Barrel    `autoref:"children" yaml:"barrels"`
	Muzzle    *Muzzle      `autoref:"children,name=Muzzle,optional" yaml:"muzzle"`
	Stats     *WeaponStats `autoref:"asset,path=weapons/turret" yaml:"stats"`
	Damage    int          `autoref:"sync" yaml:"damage"`
	Range     float64      `yaml:"range"`
}

// OnAfterSyncStats copies weapon stats onto the turret.
func (t *Turret) OnAfterSyncStats() {
	if t.Stats == nil {
		return
	}
	t.Damage = t.Stats.Damage * max(len(t.Barrels), 1)
	t.Range = t.Stats.Range
}

// Unit is a controllable actor.
type Unit struct {
	scene.Base
	Body    *Collider    `autoref:"own" yaml:"body"`
	Health  Damageable   `autoref:"own" yaml:"health"`
	Squad   *Squad       `autoref:"parent,optional" yaml:"squad"`
	Weapons []*Turret    `autoref:"children,self" yaml:"weapons"`
	Allies  []Damageable `autoref:"siblings" yaml:"allies"`
	Palette *Palette     `autoref:"asset,path=palettes/default,mode=get-if-empty" yaml:"palette"`
}

// Squad groups units.
type Squad struct {
	scene.Base
	Callsign string   `yaml:"callsign"`
	Members  []*Unit  `autoref:"children" yaml:"members"`
	Leader   *Unit    `autoref:"children,name=Leader,mode=validate,optional" yaml:"leader"`
	Banner   *Palette `autoref:"asset,path=palettes/default" yaml:"banner"`
	Size     int      `autoref:"sync" yaml:"size"`
}

// OnAfterSyncSize counts the squad members.
func (s *Squad) OnAfterSyncSize() {
	s.Size = len(s.Members)
}

func init() {
	scene.MustRegister(scene.DefaultRegistry, "components.Transform", &Transform{})
	scene.MustRegister(scene.DefaultRegistry, "components.Collider", &Collider{})
	scene.MustRegister(scene.DefaultRegistry, "components.Barrel", &Barrel{})
	scene.MustRegister(scene.DefaultRegistry, "components.Muzzle", &Muzzle{})
	scene.MustRegister(scene.DefaultRegistry, "components.Health", &Health{})
	scene.MustRegister(scene.DefaultRegistry, "components.Shield", &Shield{})
	scene.MustRegister(scene.DefaultRegistry, "components.Turret", &Turret{})
	scene.MustRegister(scene.DefaultRegistry, "components.Unit", &Unit{})
	scene.MustRegister(scene.DefaultRegistry, "components.Squad", &Squad{})

	assets.DefaultTypes.MustRegister("components.WeaponStats", &WeaponStats{})
	assets.DefaultTypes.MustRegister("components.Palette", &Palette{})
}
