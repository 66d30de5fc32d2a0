package vtui

import (
	"fmt"
	"testing"
)

// Simulate a data item
type benchItem struct {
	Name   string
	Value  int
	Active bool
}

func generateItems(n int) []benchItem {
	items := make([]benchItem, n)
	for i := range items {
		items[i] = benchItem{
			Name:   fmt.Sprintf("Item %d", i),
			Value:  i * 10,
			Active: i%2 == 0,
		}
	}
	return items
}

func benchRow(c *Component, item benchItem) {
	c.SetMeasure(Exact(1))
	hover := NewState(c, false)
	Listen(c, func(e *EventContext[MouseHover]) {
		hover.Set(e.IsPointerHit())
	})
	c.Draw(func(cv *Canvas) {
		style := Style{}
		if item.Active {
			style = style.Bold().Foreground(Green)
		}
		if hover.Get() {
			style = style.Inverse()
		}
		cv.Text(0, 0, item.Name, style)
		cv.Text(20, 0, fmt.Sprint(item.Value), style)
	})
}

type benchListProps struct {
	Items *[]benchItem
}

func benchList(c *Component, p benchListProps) {
	c.SetClipped(true)
	c.Compose(func(ui *Ui) {
		for i, item := range *p.Items {
			Child(ui, benchRow, item).Key(i)
		}
	})
}

// Benchmark: building the tree from nothing
func BenchmarkMount(b *testing.B) {
	items := generateItems(1000)
	b.ReportAllocs()
	for b.Loop() {
		NewArena(Describe(benchList, benchListProps{Items: &items}))
	}
}

// Benchmark: reconciling with nothing changed, the common per-event case
func BenchmarkReconcileStable(b *testing.B) {
	items := generateItems(1000)
	a := NewArena(Describe(benchList, benchListProps{Items: &items}))
	b.ReportAllocs()
	for b.Loop() {
		a.Reconcile(a.Root())
	}
}

// Benchmark: reconciling with one item changed
func BenchmarkReconcileOneChanged(b *testing.B) {
	items := generateItems(1000)
	a := NewArena(Describe(benchList, benchListProps{Items: &items}))
	b.ReportAllocs()
	i := 0
	for b.Loop() {
		items[i%len(items)].Value++
		a.Reconcile(a.Root())
		i++
	}
}

// Benchmark: layout and draw into an 80x24 buffer
func BenchmarkRender(b *testing.B) {
	items := generateItems(1000)
	a := NewArena(Describe(benchList, benchListProps{Items: &items}))
	buf := NewBuffer(80, 24)
	b.ReportAllocs()
	for b.Loop() {
		buf.Clear()
		a.Render(buf)
	}
}

// Benchmark: hit-test and bubble a pointer event
func BenchmarkDispatchPointer(b *testing.B) {
	items := generateItems(1000)
	a := NewArena(Describe(benchList, benchListProps{Items: &items}))
	a.Layout(NewRect(0, 0, 80, 24))
	ctx := NewContext()
	b.ReportAllocs()
	i := 0
	for b.Loop() {
		a.Dispatch(MouseHover{X: 5, Y: i % 24}, ctx)
		i++
	}
}
