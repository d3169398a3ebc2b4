package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/tilemap/collision"
	"github.com/milk9111/tilemap/ecs"
	"github.com/milk9111/tilemap/ecs/component"
)

type collidable = collision.TileCollidable

func transformPosition(t *component.Transform) cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

// statusPanel is the right hand column: selected mover, path state, the last
// message and a pause button.
type statusPanel struct {
	viewer   *Viewer
	ui       *ebitenui.UI
	selected *widget.Text
	path     *widget.Text
	message  *widget.Text
}

func newStatusPanel(v *Viewer) *statusPanel {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	textColor := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}

	newLabel := func(s string) *widget.Text {
		return widget.NewText(widget.TextOpts.Text(s, &face, textColor))
	}

	p := &statusPanel{
		viewer:   v,
		selected: newLabel(""),
		path:     newLabel(""),
		message:  newLabel(""),
	}

	pauseBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Pause", &face, btnTextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			v.paused = !v.paused
		}),
	)
	copyBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Copy path", &face, btnTextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			v.copyPath()
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, v.height),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, StretchVertical: true}),
		),
	)
	panel.AddChild(p.selected)
	panel.AddChild(p.path)
	panel.AddChild(pauseBtn)
	panel.AddChild(copyBtn)
	panel.AddChild(p.message)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	p.ui = &ebitenui.UI{Container: root}
	return p
}

func (p *statusPanel) refresh() {
	v := p.viewer
	p.message.Label = v.message
	if v.paused {
		p.message.Label = "paused\n" + v.message
	}

	m, ok := ecs.Get(v.scene.World, v.selected, component.MoverComponent.Kind())
	if !v.hasSelected || !ok {
		p.selected.Label = "no mover selected"
		p.path.Label = ""
		return
	}
	p.selected.Label = fmt.Sprintf("mover %d at %d,%d\ncategory %s\n%s", m.ID, m.TX, m.TY,
		v.scene.Paths.TilePath(m.TX, m.TY).Category(),
		strings.Join(v.scene.World.ComponentNames(v.selected), "\n"))

	pf, ok := v.selectedPath()
	switch {
	case !ok:
		p.path.Label = ""
	case pf.Arrived:
		p.path.Label = "arrived"
	case pf.Failed:
		p.path.Label = fmt.Sprintf("no path to %d,%d", pf.DestX, pf.DestY)
	case pf.HasDestination && pf.Path != nil:
		p.path.Label = fmt.Sprintf("to %d,%d\nstep %d/%d wait %d", pf.DestX, pf.DestY, pf.Step, pf.Path.Len()-1, pf.Waiting)
	case pf.HasDestination:
		p.path.Label = fmt.Sprintf("to %d,%d", pf.DestX, pf.DestY)
	default:
		p.path.Label = "idle"
	}
}
