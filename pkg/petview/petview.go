// Package petview 负责宠物的伪 3D 呈现与拾取。
//
// 模型是配置驱动的球体拼装体：部件球按深度从远到近绘制（画家
// 算法），交互区域球用射线求交拾取。包内不含任何玩法状态，
// 阶段覆盖层、区域消退与装扮都由 grooming.Engine 经 ModelView
// 接口写入。
package petview

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/petspa/internal/geom"
	"github.com/gonewx/petspa/pkg/config"
	"github.com/gonewx/petspa/pkg/grooming"
)

// 覆盖层与面部的绘制颜色
var (
	dirtOverlayColor  = color.RGBA{R: 0x8a, G: 0x66, B: 0x3d, A: 0xff} // 污渍
	foamOverlayColor  = color.RGBA{R: 0xfb, G: 0xfd, B: 0xff, A: 0xff} // 泡沫
	rinseOverlayColor = color.RGBA{R: 0xd9, G: 0xea, B: 0xff, A: 0xff} // 残余泡沫
	sheenOverlayColor = color.RGBA{R: 0x9e, G: 0xc8, B: 0xe8, A: 0xff} // 未吹干的水光
	zoneGlowColor     = color.RGBA{R: 0xff, G: 0xf3, B: 0xb0, A: 0xff} // 未完成区域的提示光圈
	shadowColor       = color.RGBA{R: 0x0a, G: 0x0c, B: 0x0a, A: 0x46}
	cosmeticFallback  = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
)

// View 宠物视图
//
// 实现 grooming.ModelView。一个 View 绑定一个宠物配置，相机在
// LoadModel 时按模型包围球自动取景。
type View struct {
	pet      *config.PetConfig
	catalog  *config.CosmeticCatalog
	animator *Animator
	camera   *OrbitCamera

	parts    []partVisual
	zones    []*zoneVisual
	equipped map[string]cosmeticVisual

	headIdx int
	groundY float64
	bound   float64

	phase  grooming.Phase
	clock  float64
	loaded bool
}

// partVisual 部件球的绘制状态
type partVisual struct {
	center geom.Vec3
	radius float64
	clr    color.RGBA
}

// zoneVisual 交互区域球与其覆盖层不透明度
type zoneVisual struct {
	name   string
	sphere geom.Sphere
	fade   float64
}

// cosmeticVisual 已装扮饰品的绘制状态
type cosmeticVisual struct {
	id     string
	shape  string
	clr    color.RGBA
	anchor geom.Vec3
}

// New 创建宠物视图
//
// 参数:
//   - pet: 宠物模型配置
//   - catalog: 饰品目录（解析饰品外形与颜色）
//   - animator: 共享的表情动画器，体态位移的来源
//   - width, height: 屏幕逻辑尺寸（像素）
//
// 返回:
//   - *View: 未加载模型的视图，需先经 LoadModel 实例化
func New(pet *config.PetConfig, catalog *config.CosmeticCatalog, animator *Animator, width, height int) *View {
	return &View{
		pet:      pet,
		catalog:  catalog,
		animator: animator,
		camera:   NewOrbitCamera(width, height),
		equipped: make(map[string]cosmeticVisual),
		headIdx:  -1,
	}
}

// Camera 返回视图使用的相机
func (v *View) Camera() *OrbitCamera {
	return v.camera
}

// LoadModel 从配置实例化模型并返回交互区域名单
//
// 参数:
//   - pet: 会话要求的宠物描述，ID 必须与视图绑定的配置一致
//
// 返回:
//   - []string: 按配置顺序的区域名
//   - error: 配置缺失或宠物不匹配
func (v *View) LoadModel(pet grooming.PetDescriptor) ([]string, error) {
	if v.pet == nil {
		return nil, fmt.Errorf("view has no pet config")
	}
	if pet.ID != v.pet.ID {
		return nil, fmt.Errorf("pet mismatch: view holds %q, session wants %q", v.pet.ID, pet.ID)
	}

	v.parts = v.parts[:0]
	v.headIdx = -1
	for i, part := range v.pet.Parts {
		if part.Name == "head" {
			v.headIdx = i
		}
		v.parts = append(v.parts, partVisual{
			center: geom.Vec3{X: part.X, Y: part.Y, Z: part.Z},
			radius: part.Radius,
			clr:    v.pet.PartColor(part.Role),
		})
	}

	v.zones = v.zones[:0]
	for _, zone := range v.pet.Zones {
		v.zones = append(v.zones, &zoneVisual{
			name: zone.Name,
			sphere: geom.Sphere{
				Center: geom.Vec3{X: zone.X, Y: zone.Y, Z: zone.Z},
				Radius: zone.Radius,
			},
		})
	}

	v.equipped = make(map[string]cosmeticVisual)
	v.phase = grooming.PhaseWash
	v.frameModel()
	v.loaded = true
	log.Printf("[PetView] 模型加载完成: %s，部件 %d 个，区域 %d 个", v.pet.ID, len(v.parts), len(v.zones))
	return v.pet.ZoneNames(), nil
}

// frameModel 按部件包围球自动取景
func (v *View) frameModel() {
	minY := math.MaxFloat64
	maxY := -math.MaxFloat64
	for _, part := range v.parts {
		if low := part.center.Y - part.radius; low < minY {
			minY = low
		}
		if high := part.center.Y + part.radius; high > maxY {
			maxY = high
		}
	}
	v.groundY = minY
	v.camera.Target = geom.Vec3{Y: (minY + maxY) / 2}

	v.bound = 0
	for _, part := range v.parts {
		if r := part.center.Sub(v.camera.Target).Length() + part.radius; r > v.bound {
			v.bound = r
		}
	}
	v.camera.Distance = clamp(v.bound/math.Tan(v.camera.FOV/2)*1.15, minCameraDistance, maxCameraDistance)
}

// ResolvePointer 把屏幕坐标解析为区域命中
//
// 射线与全部区域球求交，取最近命中。身体位移同样作用于判定球，
// 保证拾取与画面一致。
func (v *View) ResolvePointer(x, y float64) (grooming.PointerHit, bool) {
	if !v.loaded {
		return grooming.PointerHit{}, false
	}
	ray := v.camera.ScreenRay(x, y)
	offset := v.bodyOffset()

	bestT := math.MaxFloat64
	var best grooming.PointerHit
	found := false
	for _, zone := range v.zones {
		sphere := zone.sphere
		sphere.Center.Y += offset
		t, ok := ray.IntersectSphere(sphere)
		if !ok || t >= bestT {
			continue
		}
		bestT = t
		best = grooming.PointerHit{Zone: zone.name, Point: ray.At(t)}
		found = true
	}
	return best, found
}

// SetPhaseOverlay 切换覆盖层样式到指定阶段
func (v *View) SetPhaseOverlay(phase grooming.Phase) {
	v.phase = phase
}

// SetZoneFade 设置区域覆盖层的不透明度，0 为完全清除
func (v *View) SetZoneFade(zone string, alpha float64) {
	for _, z := range v.zones {
		if z.name == zone {
			z.fade = clamp(alpha, 0, 1)
			return
		}
	}
}

// AttachCosmetic 在槽位挂上饰品
func (v *View) AttachCosmetic(slot, cosmeticID string) {
	item, ok := v.catalog.ByID(cosmeticID)
	if !ok {
		log.Printf("[PetView] 饰品不在目录中: %s", cosmeticID)
		return
	}
	anchor, ok := v.pet.Attachments[slot]
	if !ok {
		log.Printf("[PetView] 模型 %s 没有挂点: %s", v.pet.ID, slot)
		return
	}
	v.equipped[slot] = cosmeticVisual{
		id:     cosmeticID,
		shape:  item.Shape,
		clr:    config.HexColorOr(item.Color, cosmeticFallback),
		anchor: geom.Vec3{X: anchor.X, Y: anchor.Y, Z: anchor.Z},
	}
}

// DetachCosmetic 摘下槽位上的饰品
func (v *View) DetachCosmetic(slot string) {
	delete(v.equipped, slot)
}

// Teardown 卸载模型状态
func (v *View) Teardown() {
	v.parts = nil
	v.zones = nil
	v.equipped = make(map[string]cosmeticVisual)
	v.headIdx = -1
	v.loaded = false
	log.Printf("[PetView] 模型已卸载")
}

// Update 推进视图自身的时钟（提示光圈的呼吸闪烁用）
func (v *View) Update(dt float64) {
	if dt > 0 {
		v.clock += dt
	}
}

// bodyOffset 返回动画器给出的身体竖直位移
func (v *View) bodyOffset() float64 {
	if v.animator == nil {
		return 0
	}
	return v.animator.BodyOffset()
}

// Draw 绘制宠物、覆盖层与已装扮的饰品
//
// 分层画家算法：地面阴影与背部饰品垫底，部件球按深度从远到近
// 绘制，覆盖层与面部叠加在身体之上，头颈饰品最后绘制。
func (v *View) Draw(screen *ebiten.Image) {
	if !v.loaded {
		return
	}
	offset := v.bodyOffset()

	v.drawShadow(screen)
	if item, ok := v.equipped[config.SlotBack]; ok {
		v.drawCosmetic(screen, item, offset)
	}
	v.drawBody(screen, offset)
	v.drawZoneOverlays(screen, offset)
	v.drawFace(screen, offset)
	if item, ok := v.equipped[config.SlotNeck]; ok {
		v.drawCosmetic(screen, item, offset)
	}
	if item, ok := v.equipped[config.SlotHat]; ok {
		v.drawCosmetic(screen, item, offset)
	}
}

// screenCircle 投影后的部件圆
type screenCircle struct {
	x, y, radius float32
	depth        float64
	clr          color.RGBA
}

// drawShadow 在地面绘制椭圆近似的阴影，跳起时略微收缩
func (v *View) drawShadow(screen *ebiten.Image) {
	ground := geom.Vec3{X: v.camera.Target.X, Y: v.groundY, Z: v.camera.Target.Z}
	sx, sy, depth, ok := v.camera.Project(ground)
	if !ok {
		return
	}
	shrink := clamp(1-v.bodyOffset()*0.5, 0.7, 1.1)
	radius := v.bound * 0.55 * v.camera.ScaleAt(depth) * shrink
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), shadowColor, true)
}

// drawBody 按深度从远到近绘制部件球
func (v *View) drawBody(screen *ebiten.Image, offset float64) {
	circles := make([]screenCircle, 0, len(v.parts))
	for _, part := range v.parts {
		center := part.center
		center.Y += offset
		sx, sy, depth, ok := v.camera.Project(center)
		if !ok {
			continue
		}
		circles = append(circles, screenCircle{
			x:      float32(sx),
			y:      float32(sy),
			radius: float32(part.radius * v.camera.ScaleAt(depth)),
			depth:  depth,
			clr:    part.clr,
		})
	}
	sort.Slice(circles, func(i, j int) bool {
		return circles[i].depth > circles[j].depth
	})
	for _, c := range circles {
		vector.DrawFilledCircle(screen, c.x, c.y, c.radius, c.clr, true)
	}
}

// overlayBaseColor 返回阶段覆盖层的底色；阶段无覆盖层时 ok 为 false
func overlayBaseColor(phase grooming.Phase) (color.RGBA, bool) {
	switch phase {
	case grooming.PhaseWash:
		return dirtOverlayColor, true
	case grooming.PhaseSoap:
		return foamOverlayColor, true
	case grooming.PhaseRinse:
		return rinseOverlayColor, true
	case grooming.PhaseDry:
		return sheenOverlayColor, true
	default:
		return color.RGBA{}, false
	}
}

// drawZoneOverlays 绘制区域覆盖层与未完成提示光圈
//
// 覆盖层不透明度跟随引擎写入的消退值；打泡沫阶段反向呈现，
// 泡沫随进度增厚而不是消退。
func (v *View) drawZoneOverlays(screen *ebiten.Image, offset float64) {
	base, ok := overlayBaseColor(v.phase)
	if !ok {
		return
	}
	pulse := 0.22 + 0.16*math.Sin(v.clock*3.2)
	for _, zone := range v.zones {
		center := zone.sphere.Center
		center.Y += offset
		sx, sy, depth, visible := v.camera.Project(center)
		if !visible {
			continue
		}
		radius := zone.sphere.Radius * 0.8 * v.camera.ScaleAt(depth)

		effective := zone.fade
		if v.phase == grooming.PhaseSoap {
			effective = 1 - zone.fade
		}
		if effective > 0.01 {
			clr := withAlpha(base, 0.55*effective)
			vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), clr, true)
		}
		if zone.fade > 0.01 {
			clr := withAlpha(zoneGlowColor, pulse)
			vector.StrokeCircle(screen, float32(sx), float32(sy), float32(radius)+3, 2, clr, true)
		}
	}
}

// drawFace 绘制眼睛与嘴（头部件缺失的模型没有面部）
func (v *View) drawFace(screen *ebiten.Image, offset float64) {
	if v.headIdx < 0 || v.headIdx >= len(v.parts) {
		return
	}
	head := v.parts[v.headIdx]
	clr := v.pet.PartColor(config.PartRoleDetail)

	for _, side := range []float64{-1, 1} {
		eye := head.center.Add(geom.Vec3{X: side * 0.38 * head.radius, Y: 0.12 * head.radius, Z: 0.82 * head.radius})
		eye.Y += offset
		sx, sy, depth, ok := v.camera.Project(eye)
		if !ok {
			continue
		}
		radius := 0.13 * head.radius * v.camera.ScaleAt(depth)
		if v.animator != nil && v.animator.EyesClosed() {
			vector.StrokeLine(screen, float32(sx-radius), float32(sy), float32(sx+radius), float32(sy), 2, clr, true)
		} else {
			vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), clr, true)
		}
	}

	mouth := head.center.Add(geom.Vec3{Y: -0.34 * head.radius, Z: 0.8 * head.radius})
	mouth.Y += offset
	sx, sy, depth, ok := v.camera.Project(mouth)
	if !ok {
		return
	}
	halfW := 0.26 * head.radius * v.camera.ScaleAt(depth)
	v.drawMouth(screen, float32(sx), float32(sy), float32(halfW), clr)
}

// drawMouth 按当前表情绘制嘴形
func (v *View) drawMouth(screen *ebiten.Image, x, y, halfW float32, clr color.RGBA) {
	curve := float32(0)
	if v.animator != nil {
		switch v.animator.Expression() {
		case grooming.ExpressionHappy, grooming.ExpressionBounce:
			curve = halfW * 0.4
		case grooming.ExpressionUnhappy:
			curve = -halfW * 0.4
		}
	}
	if curve == 0 {
		vector.StrokeLine(screen, x-halfW*0.7, y, x+halfW*0.7, y, 2, clr, true)
		return
	}
	// 屏幕 Y 向下：curve 为正时两端翘起、中间下垂，即微笑
	vector.StrokeLine(screen, x-halfW, y-curve*0.5, x, y+curve*0.5, 2, clr, true)
	vector.StrokeLine(screen, x, y+curve*0.5, x+halfW, y-curve*0.5, 2, clr, true)
}

// drawCosmetic 在挂点绘制饰品
func (v *View) drawCosmetic(screen *ebiten.Image, item cosmeticVisual, offset float64) {
	anchor := item.anchor
	anchor.Y += offset
	sx, sy, depth, ok := v.camera.Project(anchor)
	if !ok {
		return
	}
	x := float32(sx)
	y := float32(sy)
	u := float32(v.camera.ScaleAt(depth))
	clr := item.clr

	switch item.shape {
	case config.CosmeticShapeCap:
		vector.DrawFilledCircle(screen, x, y-0.08*u, 0.3*u, clr, true)
		vector.DrawFilledRect(screen, x-0.38*u, y, 0.76*u, 0.1*u, clr, true)
	case config.CosmeticShapeCrown:
		vector.DrawFilledRect(screen, x-0.3*u, y-0.16*u, 0.6*u, 0.2*u, clr, true)
		for _, dx := range []float32{-0.2, 0, 0.2} {
			vector.DrawFilledCircle(screen, x+dx*u, y-0.24*u, 0.07*u, clr, true)
		}
	case config.CosmeticShapeBow:
		vector.DrawFilledCircle(screen, x-0.16*u, y, 0.14*u, clr, true)
		vector.DrawFilledCircle(screen, x+0.16*u, y, 0.14*u, clr, true)
		vector.DrawFilledCircle(screen, x, y, 0.08*u, clr, true)
	case config.CosmeticShapeScarf:
		vector.DrawFilledRect(screen, x-0.34*u, y-0.08*u, 0.68*u, 0.16*u, clr, true)
		vector.DrawFilledRect(screen, x+0.08*u, y+0.06*u, 0.16*u, 0.3*u, clr, true)
	case config.CosmeticShapeWings:
		faded := withAlpha(clr, 0.8)
		vector.DrawFilledCircle(screen, x-0.42*u, y-0.08*u, 0.3*u, faded, true)
		vector.DrawFilledCircle(screen, x+0.42*u, y-0.08*u, 0.3*u, faded, true)
	case config.CosmeticShapeCape:
		vector.DrawFilledRect(screen, x-0.4*u, y, 0.8*u, 0.85*u, withAlpha(clr, 0.9), true)
	default:
		vector.DrawFilledCircle(screen, x, y, 0.2*u, clr, true)
	}
}

// DrawParticles 绘制粒子池中的活跃粒子
//
// 粒子坐标是世界空间，投影后按粒子自身颜色与透明度绘制。
func (v *View) DrawParticles(screen *ebiten.Image, pool *grooming.Pool) {
	if pool == nil {
		return
	}
	pool.ForEach(func(p *grooming.Particle) {
		sx, sy, depth, ok := v.camera.Project(p.Pos)
		if !ok {
			return
		}
		radius := p.Radius * v.camera.ScaleAt(depth)
		if radius < 0.5 {
			radius = 0.5
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), withAlpha(p.Color, p.Alpha), true)
	})
}

// withAlpha 把直通 alpha 颜色按总不透明度预乘，供 vector 绘制使用
func withAlpha(clr color.RGBA, alpha float64) color.RGBA {
	a := clamp(alpha, 0, 1) * float64(clr.A) / 255
	return color.RGBA{
		R: uint8(float64(clr.R) * a),
		G: uint8(float64(clr.G) * a),
		B: uint8(float64(clr.B) * a),
		A: uint8(255 * a),
	}
}
