package tank

import (
	"sort"

	"TankBattle/modules/kit/errx"
)

// BrainResolver 按名字找到 Brain，找不到返回 false。
type BrainResolver interface {
	Resolve(name string) (Brain, bool)
}

// Catalog 是可用脑本的登记表，菜单按 Names() 的顺序轮换。
type Catalog struct {
	brains map[string]Brain
}

func NewCatalog() *Catalog {
	return &Catalog{brains: make(map[string]Brain)}
}

// Register 登记或覆盖一个脑本。
func (c *Catalog) Register(name string, b Brain) {
	errx.Require(name != "", "brain name != \"\"")
	errx.Require(b != nil, "brain != nil")
	c.brains[name] = b
}

func (c *Catalog) Resolve(name string) (Brain, bool) {
	if c == nil || name == "" {
		return nil, false
	}
	b, ok := c.brains[name]
	return b, ok
}

func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.brains))
	for name := range c.brains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.brains)
}
