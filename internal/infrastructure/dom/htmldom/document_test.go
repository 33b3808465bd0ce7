package htmldom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
)

const shadowPage = `<html><body>
<div id="outer">
  <template shadowrootmode="open">
    <div id="middle">
      <template shadowrootmode="open">
        <input id="deep" class="date" value="2026-01-02">
      </template>
    </div>
  </template>
</div>
<div id="sealed">
  <template shadowrootmode="closed"><input id="hidden"></template>
</div>
<input id="light" class="date">
</body></html>`

func TestQuerySelector_DoesNotCrossShadowBoundary(t *testing.T) {
	doc := MustParse(shadowPage)

	all, err := doc.QuerySelectorAll("input.date")
	require.NoError(t, err)
	require.Len(t, all, 1)
	v, _ := all[0].Attribute("id")
	assert.Equal(t, "light", v)

	none, err := doc.QuerySelector("#deep")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestShadowRoots_OpenAndClosed(t *testing.T) {
	doc := MustParse(shadowPage)

	outer := doc.Query("#outer")
	require.NotNil(t, outer)
	outerRoot := outer.ShadowRoot()
	require.NotNil(t, outerRoot)
	assert.Equal(t, dom.RootShadow, outerRoot.Kind())
	assert.Same(t, doc, outerRoot.Document())
	assert.Equal(t, outer, outerRoot.Host())

	middle, err := outerRoot.QuerySelector("#middle")
	require.NoError(t, err)
	require.NotNil(t, middle)
	inner := middle.ShadowRoot()
	require.NotNil(t, inner)
	assert.NotEqual(t, outerRoot.ID(), inner.ID())

	deep, err := inner.QuerySelector("#deep")
	require.NoError(t, err)
	require.NotNil(t, deep)
	assert.Equal(t, inner, deep.Root())
	v, err := deep.Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-01-02", v)

	sealed := doc.Query("#sealed")
	assert.Nil(t, sealed.ShadowRoot())
	closed := doc.Shadow(sealed)
	require.NotNil(t, closed)
	assert.NotNil(t, closed.Query("#hidden"))
}

func TestInvalidSelector(t *testing.T) {
	doc := MustParse(`<p>x</p>`)
	_, err := doc.QuerySelector("p[")
	assert.ErrorIs(t, err, ErrInvalidSelector)
	assert.Nil(t, doc.Query("p["))
}

func TestFrames(t *testing.T) {
	doc := MustParse(`<body>
		<iframe id="inline" srcdoc="<input class='inside'>"></iframe>
		<iframe id="same" src="/embed.html"></iframe>
		<iframe id="other" src="https://elsewhere.test/x"></iframe>
		<iframe id="blank"></iframe>
		<div id="plain"></div>
	</body>`,
		WithOrigin("https://demo.local/"),
		WithFrame("/embed.html", `<input class="embedded">`),
	)

	inline, err := doc.Query("#inline").ContentDocument()
	require.NoError(t, err)
	el, err := inline.QuerySelector("input.inside")
	require.NoError(t, err)
	assert.NotNil(t, el)
	assert.NotEqual(t, doc.ID(), inline.ID())

	again, err := doc.Query("#inline").ContentDocument()
	require.NoError(t, err)
	assert.Equal(t, inline.ID(), again.ID())

	same, err := doc.Query("#same").Frame()
	require.NoError(t, err)
	assert.NotNil(t, same.Query("input.embedded"))

	_, err = doc.Query("#other").ContentDocument()
	assert.ErrorIs(t, err, ErrCrossOrigin)

	_, err = doc.Query("#blank").ContentDocument()
	assert.Error(t, err)

	_, err = doc.Query("#plain").ContentDocument()
	assert.ErrorIs(t, err, ErrNotFrame)
}

func TestEvents_BubbleAcrossShadowHost(t *testing.T) {
	doc := MustParse(shadowPage)
	outer := doc.Query("#outer")
	middle := outer.ShadowRoot().(*ShadowRoot).Query("#middle")
	deep := middle.ShadowRoot().(*ShadowRoot).Query("#deep")

	var seen []string
	outer.On("change", func(target *Element, ev dom.Event) {
		id, _ := target.Attribute("id")
		seen = append(seen, "outer:"+id)
	})
	deep.On("change", func(target *Element, ev dom.Event) {
		seen = append(seen, "deep")
	})

	require.NoError(t, deep.Dispatch(dom.Event{Type: "change"}))
	assert.Equal(t, []string{"deep", "outer:deep"}, seen)

	events := doc.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "change", events[0].Event.Type)
	assert.Same(t, deep, events[0].Target)
}

func TestValue_PropertyWinsOverAttribute(t *testing.T) {
	doc := MustParse(`<input id="a" value="old"><textarea id="b">notes</textarea>`)
	a := doc.Query("#a")

	v, _ := a.Value()
	assert.Equal(t, "old", v)
	require.NoError(t, a.SetValue("new"))
	v, _ = a.Value()
	assert.Equal(t, "new", v)
	attr, _ := a.Attribute("value")
	assert.Equal(t, "old", attr)

	v, _ = doc.Query("#b").Value()
	assert.Equal(t, "notes", v)

	prop, ok, err := a.Property("value")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", prop)
}

func TestFocusBlurAndActiveElement(t *testing.T) {
	doc := MustParse(`<body><input id="a"></body>`)
	a := doc.Query("#a")

	active, err := doc.ActiveElement()
	require.NoError(t, err)
	assert.Equal(t, "body", active.TagName())

	require.NoError(t, a.Focus())
	active, _ = doc.ActiveElement()
	assert.Equal(t, a, active)

	require.NoError(t, a.Blur())
	active, _ = doc.ActiveElement()
	assert.Equal(t, "body", active.TagName())
}

func TestClick_Disabled(t *testing.T) {
	doc := MustParse(`<button id="ok">ok</button><button id="off" disabled>off</button>`)
	clicks := 0
	doc.Query("#ok").On("click", func(*Element, dom.Event) { clicks++ })

	require.NoError(t, doc.Query("#ok").Click())
	assert.Equal(t, 1, clicks)
	assert.Error(t, doc.Query("#off").Click())
}

func TestMethodsPropertiesGlobals(t *testing.T) {
	doc := MustParse(`<input id="cal">`)
	cal := doc.Query("#cal")
	cal.Define("_flatpickr.setDate", func(el *Element, args ...any) (any, error) {
		return nil, el.SetValue(args[0].(string))
	})
	cal.SetProperty("_flatpickr.selectedDates", []any{"2026-10-17T00:00:00.000Z"})
	doc.SetGlobal("flatpickr", true)

	_, err := cal.Call("_flatpickr.setDate", "2026-10-17")
	require.NoError(t, err)
	v, _ := cal.Value()
	assert.Equal(t, "2026-10-17", v)

	_, err = cal.Call("_flatpickr.open")
	assert.True(t, errors.Is(err, ErrNoSuchMethod))

	p, ok, err := cal.Property("_flatpickr.selectedDates")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, p, 1)

	_, ok, _ = cal.Property("missing")
	assert.False(t, ok)

	assert.True(t, doc.HasGlobal("flatpickr"))
	assert.False(t, doc.HasGlobal("Litepicker"))
}

func TestAttributeMutation(t *testing.T) {
	doc := MustParse(`<table><tbody><tr><td id="d" class="day">5</td></tr></tbody></table>`)
	d := doc.Query("#d")
	require.NotNil(t, d)

	d.SetAttribute("aria-selected", "true")
	d.AddClass("selected")
	assert.NotNil(t, doc.Query("td.day.selected[aria-selected='true']"))

	d.RemoveAttribute("aria-selected")
	_, ok := d.Attribute("aria-selected")
	assert.False(t, ok)

	text, err := d.Text()
	require.NoError(t, err)
	assert.Equal(t, "5", text)
}

func TestHTML_RoundTripsShadowRoots(t *testing.T) {
	doc := MustParse(shadowPage)

	out := doc.HTML()
	assert.Contains(t, out, `shadowrootmode="closed"`)

	again, err := Parse(out)
	require.NoError(t, err)
	outer := again.Query("#outer")
	require.NotNil(t, outer)
	root := outer.ShadowRoot()
	require.NotNil(t, root)
	middle, err := root.QuerySelector("#middle")
	require.NoError(t, err)
	require.NotNil(t, middle)
	inner := middle.ShadowRoot()
	require.NotNil(t, inner)
	deep, err := inner.QuerySelector("#deep")
	require.NoError(t, err)
	assert.NotNil(t, deep)

	// rendering leaves the original tree untouched
	none, err := doc.QuerySelector("template")
	require.NoError(t, err)
	assert.Nil(t, none)
	assert.NotNil(t, doc.Shadow(doc.Query("#outer")))
}
