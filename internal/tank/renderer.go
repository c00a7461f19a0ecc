package tank

import "TankBattle/internal/game/entity"

// MeshRenderer 是坦克上一个可着色的网格部件。
type MeshRenderer struct {
	Name  string
	Color entity.Color
}

// StandardRenderers 返回一辆标准坦克的部件：车身、炮塔、左右履带。
func StandardRenderers() []*MeshRenderer {
	return []*MeshRenderer{
		{Name: "hull"},
		{Name: "turret"},
		{Name: "track_left"},
		{Name: "track_right"},
	}
}
