package paint

import (
	"fmt"
	"testing"

	"github.com/gogpu/gg"
)

func TestRecorderPlaybackOrder(t *testing.T) {
	rec := NewRecorder(NewRect(0, 0, 100, 100))
	rec.Save()
	rec.Translate(-10, -20)
	for i := range 3 {
		rec.DrawRect(NewRect(float64(i), 0, 1, 1), Fill(gg.Red))
	}
	rec.Restore()
	pic := rec.FinishRecordingAsPicture()

	if pic.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", pic.Len())
	}
	if pic.ApproximateOpCount() != 6 {
		t.Errorf("ApproximateOpCount() = %d, want 6", pic.ApproximateOpCount())
	}

	spy := &spyCanvas{}
	if !pic.Playback(spy, nil) {
		t.Error("Playback() without abort returned false")
	}
	want := []string{"Save", "Translate(-10,-20)", "DrawRect(0,0)", "DrawRect(1,0)", "DrawRect(2,0)", "Restore"}
	if fmt.Sprint(spy.calls) != fmt.Sprint(want) {
		t.Errorf("Playback calls = %v, want %v", spy.calls, want)
	}
}

func TestRecorderClosesOpenSaves(t *testing.T) {
	rec := NewRecorder(NewRect(0, 0, 10, 10))
	rec.Restore() // unmatched restore is dropped
	rec.Save()
	rec.Save()
	pic := rec.FinishRecordingAsPicture()

	kinds := ""
	for op := range pic.Ops() {
		kinds += op.Kind().String() + " "
	}
	if kinds != "Save Save Restore Restore " {
		t.Errorf("ops = %q", kinds)
	}
}

func TestPlaybackAbort(t *testing.T) {
	rec := NewRecorder(NewRect(0, 0, 10, 10))
	rec.Save()
	for i := range 10 {
		rec.DrawRect(NewRect(float64(i), 0, 1, 1), Fill(gg.Red))
	}
	rec.Restore()
	pic := rec.FinishRecordingAsPicture()

	spy := &spyCanvas{}
	polls := 0
	done := pic.Playback(spy, func() bool {
		polls++
		return polls > 3
	})
	if done {
		t.Error("Playback() = true, want false after abort")
	}
	want := []string{"Save", "DrawRect(0,0)", "DrawRect(1,0)", "Restore"}
	if fmt.Sprint(spy.calls) != fmt.Sprint(want) {
		t.Errorf("Playback calls = %v, want %v", spy.calls, want)
	}
}

func TestPictureGPUAnalysisIsPermissive(t *testing.T) {
	rec := NewRecorder(NewRect(0, 0, 100, 100))
	for range MaxConcaveAAPaths {
		rec.DrawPath(concavePath(), Fill(gg.Black), gg.FillRuleNonZero)
	}
	pic := rec.FinishRecordingAsPicture()

	if !pic.SuitableForGPURasterization() {
		t.Errorf("picture with %d concave AA paths should be suitable", MaxConcaveAAPaths)
	}
	for op := range pic.Ops() {
		if GPUSuitable(op) {
			t.Error("individual concave AA path should not be suitable")
		}
	}

	rec = NewRecorder(NewRect(0, 0, 100, 100))
	for range MaxConcaveAAPaths + 1 {
		rec.DrawPath(concavePath(), Fill(gg.Black), gg.FillRuleNonZero)
	}
	if rec.FinishRecordingAsPicture().SuitableForGPURasterization() {
		t.Error("picture over the concave path budget should not be suitable")
	}
}

func TestStarPathsCountAsConcave(t *testing.T) {
	rec := NewRecorder(NewRect(0, 0, 100, 100))
	for range MaxConcaveAAPaths + 1 {
		rec.DrawPath(starPath(), Fill(gg.Black), gg.FillRuleNonZero)
	}
	if rec.FinishRecordingAsPicture().SuitableForGPURasterization() {
		t.Error("picture with too many anti-aliased stars should not be suitable")
	}
}

func TestNestedPictureFoldsAnalysis(t *testing.T) {
	inner := NewRecorder(NewRect(0, 0, 10, 10))
	dashed := StrokeWith(gg.Black, 1)
	dashed.Stroke.Dash = []float64{1}
	inner.DrawRect(NewRect(0, 0, 5, 5), dashed)
	innerPic := inner.FinishRecordingAsPicture()

	outer := NewRecorder(NewRect(0, 0, 10, 10))
	outer.DrawPicture(innerPic)
	outerPic := outer.FinishRecordingAsPicture()

	if outerPic.SuitableForGPURasterization() {
		t.Error("bad dash inside nested picture should veto the outer picture")
	}
	if innerPic.Refs() != 2 {
		t.Errorf("inner Refs() = %d, want 2", innerPic.Refs())
	}
	outerPic.Release()
	if innerPic.Refs() != 1 {
		t.Errorf("inner Refs() after outer release = %d, want 1", innerPic.Refs())
	}
}

func TestPictureRelease(t *testing.T) {
	rec := NewRecorder(NewRect(0, 0, 10, 10))
	rec.DrawRect(NewRect(0, 0, 1, 1), Fill(gg.Red))
	pic := rec.FinishRecordingAsPicture()

	holder := pic.Ref()
	pic.Release()
	if holder.Len() != 1 {
		t.Fatalf("picture freed while still referenced")
	}
	holder.Release()
	if holder.Len() != 0 {
		t.Errorf("Len() after last release = %d, want 0", holder.Len())
	}
}

func TestRecorderClonesPath(t *testing.T) {
	path := squarePath()
	rec := NewRecorder(NewRect(0, 0, 10, 10))
	rec.DrawPath(path, Fill(gg.Red), gg.FillRuleNonZero)
	path.LineTo(100, 100)

	pic := rec.FinishRecordingAsPicture()
	for op := range pic.Ops() {
		p := op.(PathOp)
		if p.Path.NumVerbs() == path.NumVerbs() {
			t.Error("recorded path shares storage with caller path")
		}
	}
}

func TestRegistry(t *testing.T) {
	Register("spy-test", func(int, int) Canvas { return &spyCanvas{} })
	t.Cleanup(func() { Unregister("spy-test") })

	if !IsRegistered("spy-test") {
		t.Fatal("spy-test not registered")
	}
	c, err := NewCanvas("spy-test", 10, 10)
	if err != nil {
		t.Fatalf("NewCanvas() error = %v", err)
	}
	if _, ok := c.(*spyCanvas); !ok {
		t.Errorf("NewCanvas() returned %T", c)
	}
	if _, err := NewCanvas("missing", 1, 1); err == nil {
		t.Error("NewCanvas(missing) should fail")
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("spy-test", func(int, int) Canvas { return nil })
}
