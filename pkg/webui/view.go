package webui

import (
	"html/template"

	"github.com/shouni/chroma-weaver/pkg/domain"
	"github.com/shouni/chroma-weaver/pkg/session"
)

type modeView struct {
	domain.Descriptor
	Active bool
}

type pageView struct {
	Modes       []modeView
	Description string
	Config      domain.ModeConfig
	Image1      template.URL
	Image2      template.URL
	Result      template.URL
	ResultName  string
	CanUndo     bool
	CanRedo     bool
	ShowHistory bool
	Loading     bool
	Error       string
}

// newPageView は State から描画用の値を作ります。設定は毎回導出し直す。
// Data URL は自分で組み立てたものだけなので template.URL として信頼してよい。
func newPageView(st session.State) pageView {
	v := pageView{
		Config:      st.Config(),
		Image1:      assetURL(st.Image1),
		Image2:      assetURL(st.Image2),
		Result:      template.URL(st.History.Present),
		ResultName:  domain.ResultFileName,
		CanUndo:     st.History.CanUndo(),
		CanRedo:     st.History.CanRedo(),
		ShowHistory: !st.History.IsEmpty(),
		Loading:     st.Loading,
		Error:       st.Err,
	}
	for _, d := range domain.Descriptors() {
		v.Modes = append(v.Modes, modeView{Descriptor: d, Active: d.Mode == st.Mode})
		if d.Mode == st.Mode {
			v.Description = d.Description
		}
	}
	return v
}

func assetURL(a *domain.ImageAsset) template.URL {
	if a == nil {
		return ""
	}
	return template.URL(a.Data)
}

type slotView struct {
	Slot    int
	Title   string
	Preview template.URL
}

var templateFuncs = template.FuncMap{
	"slot": func(n int, title string, preview template.URL) slotView {
		return slotView{Slot: n, Title: title, Preview: preview}
	},
}
