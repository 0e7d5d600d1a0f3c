package batch

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/repofill/repofill/internal/remote"
)

// fakeForge is an in-memory Forge with programmable per-path failures and a
// concurrency gauge.
type fakeForge struct {
	mu sync.Mutex

	// repoErrs fails CreateRepo for the named repository.
	repoErrs map[string]error
	// createErrs queues one error per CreateFile call for "repo/path";
	// an exhausted queue means success.
	createErrs map[string][]error
	// failAlways makes every CreateFile for "repo/path" fail.
	failAlways map[string]error
	getErr     error
	updateErr  error

	files map[string]string

	repoCalls   int
	createCalls map[string]int
	getCalls    int
	updateCalls int

	inFlight    int
	maxInFlight int

	// barrier, when set, makes CreateFile wait until barrier-many calls are
	// in flight at once.
	barrier *sync.WaitGroup
}

func newFakeForge() *fakeForge {
	return &fakeForge{
		repoErrs:    make(map[string]error),
		createErrs:  make(map[string][]error),
		failAlways:  make(map[string]error),
		files:       make(map[string]string),
		createCalls: make(map[string]int),
	}
}

func (f *fakeForge) CreateRepo(_ context.Context, name, _ string, _ bool) (remote.Repo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repoCalls++
	if err := f.repoErrs[name]; err != nil {
		return remote.Repo{}, err
	}
	return remote.Repo{Owner: "octo", Name: name}, nil
}

func (f *fakeForge) CreateFile(_ context.Context, repo remote.Repo, path, content, _ string) error {
	f.enter()
	defer f.leave()
	if f.barrier != nil {
		f.barrier.Done()
		f.barrier.Wait()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	key := repo.Name + "/" + path
	f.createCalls[key]++
	if err := f.failAlways[key]; err != nil {
		return err
	}
	if q := f.createErrs[key]; len(q) > 0 {
		f.createErrs[key] = q[1:]
		return q[0]
	}
	f.files[key] = content
	return nil
}

func (f *fakeForge) GetFile(_ context.Context, repo remote.Repo, path string) (remote.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return remote.FileInfo{}, f.getErr
	}
	return remote.FileInfo{SHA: "sha-" + repo.Name + "/" + path}, nil
}

func (f *fakeForge) UpdateFile(_ context.Context, repo remote.Repo, path, content, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.files[repo.Name+"/"+path] = content
	return nil
}

func (f *fakeForge) enter() {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()
}

func (f *fakeForge) leave() {
	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
}

func (f *fakeForge) totalCreateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.createCalls {
		total += n
	}
	return total
}

func (f *fakeForge) storedLineCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.files[key]
	if !ok {
		return -1
	}
	if body == "" {
		return 0
	}
	return len(strings.Split(body, "\n"))
}

// sleepRecorder captures sleep durations instead of blocking.
type sleepRecorder struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (s *sleepRecorder) Sleep(d time.Duration) {
	s.mu.Lock()
	s.calls = append(s.calls, d)
	s.mu.Unlock()
}

func (s *sleepRecorder) count(d time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == d {
			n++
		}
	}
	return n
}

func (s *sleepRecorder) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
