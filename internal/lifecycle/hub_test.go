package lifecycle

import "testing"

type fakeService struct {
	name    string
	deps    []string
	initErr error
	log     *[]string
}

func (s *fakeService) Name() string           { return s.name }
func (s *fakeService) Dependencies() []string { return s.deps }
func (s *fakeService) Init(any) error {
	*s.log = append(*s.log, "init:"+s.name)
	return s.initErr
}
func (s *fakeService) Start() error {
	*s.log = append(*s.log, "start:"+s.name)
	return nil
}
func (s *fakeService) Stop() error {
	*s.log = append(*s.log, "stop:"+s.name)
	return nil
}

func TestInitAllRespectsDependencyOrder(t *testing.T) {
	var log []string
	h := NewHub()
	_ = h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log})
	_ = h.Register(&fakeService{name: "a", log: &log})
	_ = h.Register(&fakeService{name: "c", deps: []string{"a", "b"}, log: &log})

	if err := h.InitAll(nil); err != nil {
		t.Fatalf("init: %v", err)
	}
	want := []string{"init:a", "init:b", "init:c"}
	for i, w := range want {
		if log[i] != w {
			t.Fatalf("step %d: got %s want %s (full log %v)", i, log[i], w, log)
		}
	}
}

func TestInitAllDeterministicAcrossRuns(t *testing.T) {
	build := func() []string {
		var log []string
		h := NewHub()
		_ = h.Register(&fakeService{name: "x", log: &log})
		_ = h.Register(&fakeService{name: "y", log: &log})
		_ = h.Register(&fakeService{name: "z", log: &log})
		_ = h.InitAll(nil)
		return log
	}
	first := build()
	second := build()
	if len(first) != len(second) {
		t.Fatalf("length mismatch")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("nondeterministic order at %d: %v vs %v", i, first, second)
		}
	}
}

func TestCircularDependencyDetected(t *testing.T) {
	h := NewHub()
	var log []string
	_ = h.Register(&fakeService{name: "a", deps: []string{"b"}, log: &log})
	_ = h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log})
	if err := h.InitAll(nil); err == nil {
		t.Fatalf("expected circular dependency error")
	}
}

func TestStopAllRunsInReverseStartOrder(t *testing.T) {
	var log []string
	h := NewHub()
	_ = h.Register(&fakeService{name: "a", log: &log})
	_ = h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log})
	_ = h.InitAll(nil)
	_ = h.StartAll()
	log = nil
	h.StopAll()
	if len(log) != 2 || log[0] != "stop:b" || log[1] != "stop:a" {
		t.Fatalf("expected reverse stop order, got %v", log)
	}
}
