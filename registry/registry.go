package registry

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/edit"
	"github.com/erraggy/orgtree/internal/pathexpr"
	"github.com/erraggy/orgtree/navigator"
	"github.com/erraggy/orgtree/orgerrors"
	"github.com/erraggy/orgtree/report"
	"github.com/erraggy/orgtree/validator"
)

// Registry holds organization trees by id.
type Registry struct {
	mu    sync.RWMutex
	trees map[int64]*entry

	idMu   sync.Mutex
	nextID int64

	store  Store
	logger document.Logger
	strict bool
}

// entry guards one tree. The tree pointer is replaced, never mutated.
type entry struct {
	mu      sync.Mutex
	tree    *document.Tree
	deleted bool
}

// New creates an empty Registry.
func New(opts ...Option) (*Registry, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("registry: invalid options: %w", err)
	}
	return &Registry{
		trees:  make(map[int64]*entry),
		nextID: 1,
		store:  cfg.store,
		logger: cfg.logger.With("component", "registry"),
		strict: cfg.strictMerge,
	}, nil
}

// ParseID converts a textual tree id. Anything that is not a positive
// integer names no tree and yields *orgerrors.NotFoundError.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, &orgerrors.NotFoundError{Resource: "tree", ID: s, Message: "not a valid tree id"}
	}
	return id, nil
}

func treeNotFound(id int64) error {
	return &orgerrors.NotFoundError{Resource: "tree", ID: strconv.FormatInt(id, 10)}
}

func (r *Registry) allocateID() int64 {
	r.idMu.Lock()
	defer r.idMu.Unlock()
	id := r.nextID
	r.nextID++
	return id
}

// lookup returns the locked entry for id. The caller must unlock it.
func (r *Registry) lookup(id int64) (*entry, error) {
	r.mu.RLock()
	e, ok := r.trees[id]
	r.mu.RUnlock()
	if !ok {
		return nil, treeNotFound(id)
	}

	e.mu.Lock()
	if e.deleted {
		e.mu.Unlock()
		return nil, treeNotFound(id)
	}
	return e, nil
}

// commit saves tree and installs it in e. e must be locked.
func (r *Registry) commit(e *entry, tree *document.Tree) error {
	data, err := document.MarshalTree(tree)
	if err != nil {
		return fmt.Errorf("registry: %w", err)
	}
	if err := r.store.Save(tree.ID, data); err != nil {
		return fmt.Errorf("registry: save tree %d: %w", tree.ID, err)
	}
	e.tree = tree
	return nil
}

// Create validates data as a complete tree document and stores it under a
// new id.
func (r *Registry) Create(data []byte) (int64, error) {
	tree, err := validator.LoadTree(data, validator.ModeCreate)
	if err != nil {
		return 0, err
	}

	id := r.allocateID()
	tree.ID = id

	e := &entry{}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := r.commit(e, tree); err != nil {
		return 0, err
	}

	r.mu.Lock()
	r.trees[id] = e
	r.mu.Unlock()

	r.logger.Info("tree created", "id", id, "persons", tree.CountPersons())
	return id, nil
}

// Get returns a copy of the tree stored under id.
func (r *Registry) Get(id int64) (*document.Tree, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()
	return e.tree.Clone(), nil
}

// Document renders the whole tree stored under id.
func (r *Registry) Document(id int64, format report.Format) ([]byte, error) {
	return r.Report(id, "", format)
}

// Update merges a partial tree document into the tree stored under id.
// The partial document is parsed and validated before the tree is locked.
func (r *Registry) Update(id int64, data []byte) (*edit.MergeResult, error) {
	partial, err := validator.LoadTree(data, validator.ModeUpdate)
	if err != nil {
		return nil, err
	}

	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	result, err := edit.MergeWithOptions(
		edit.WithTree(e.tree),
		edit.WithPartial(partial),
		edit.WithStrictTargets(r.strict),
	)
	if err != nil {
		return nil, err
	}
	if result.HasChanges() {
		if err := r.commit(e, result.Tree); err != nil {
			return nil, err
		}
	}

	for _, w := range result.Warnings {
		r.logger.Warn("merge skipped person", "id", id, "warning", w)
	}
	r.logger.Info("tree updated", "id", id, "changes", len(result.Changes), "skipped", result.Skipped)
	return result, nil
}

// InsertNode appends the person fragment under parentExpr and returns the
// inserted person rendered in the document format. An empty parentExpr
// inserts a new top-level person.
func (r *Registry) InsertNode(id int64, parentExpr string, fragment []byte) ([]byte, error) {
	parent, err := parsePath(parentExpr)
	if err != nil {
		return nil, err
	}
	person, err := validator.LoadPerson(fragment)
	if err != nil {
		return nil, err
	}
	return r.Insert(id, parent, person)
}

// Insert is InsertNode for an already parsed path and person.
func (r *Registry) Insert(id int64, parent *pathexpr.Path, person *document.Person) ([]byte, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	result, err := edit.Insert(e.tree, parent, person)
	if err != nil {
		return nil, err
	}
	if err := r.commit(e, result.Tree); err != nil {
		return nil, err
	}

	r.logger.Info("node inserted", "id", id, "path", result.Path.String(),
		"container_created", result.ContainerCreated)

	out, err := document.MarshalPerson(result.Person)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}
	return out, nil
}

// RemoveNode detaches the person or children container at pathExpr, with
// its whole subtree.
func (r *Registry) RemoveNode(id int64, pathExpr string) error {
	path, err := parsePath(pathExpr)
	if err != nil {
		return err
	}

	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()

	result, err := edit.Remove(e.tree, path)
	if err != nil {
		return err
	}
	if err := r.commit(e, result.Tree); err != nil {
		return err
	}

	r.logger.Info("node removed", "id", id, "path", result.Path.String(), "removed", result.RemovedCount)
	return nil
}

// Report renders the tree stored under id, or the subtree at pathExpr when
// it is not empty.
func (r *Registry) Report(id int64, pathExpr string, format report.Format) ([]byte, error) {
	scope, err := parsePath(pathExpr)
	if err != nil {
		return nil, err
	}

	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	return report.Render(e.tree, scope, format)
}

// Resolve reports whether pathExpr addresses exactly one node of the tree
// stored under id, returning that node's kind.
func (r *Registry) Resolve(id int64, pathExpr string) (navigator.Kind, error) {
	path, err := parsePath(pathExpr)
	if err != nil {
		return 0, err
	}

	e, err := r.lookup(id)
	if err != nil {
		return 0, err
	}
	defer e.mu.Unlock()

	loc, err := navigator.Resolve(e.tree, path)
	if err != nil {
		return 0, err
	}
	return loc.Kind, nil
}

// Delete removes the tree stored under id. Operations waiting on the tree
// observe *orgerrors.NotFoundError once they acquire it.
func (r *Registry) Delete(id int64) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()

	if err := r.store.Delete(id); err != nil {
		return fmt.Errorf("registry: delete tree %d: %w", id, err)
	}
	e.deleted = true

	r.mu.Lock()
	delete(r.trees, id)
	r.mu.Unlock()

	r.logger.Info("tree deleted", "id", id)
	return nil
}

// List summarizes every stored tree in ascending id order.
func (r *Registry) List() ([]*report.Summary, error) {
	r.mu.RLock()
	ids := slices.Sorted(maps.Keys(r.trees))
	r.mu.RUnlock()

	summaries := make([]*report.Summary, 0, len(ids))
	for _, id := range ids {
		e, err := r.lookup(id)
		if err != nil {
			// Deleted since the snapshot.
			continue
		}
		s, err := report.Summarize(e.tree)
		e.mu.Unlock()
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// Len returns the number of stored trees.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trees)
}

// Load restores every tree from the store and advances the id counter past
// the highest stored id. Ids already present in the registry are skipped and
// keep their live entry. Load returns the number of trees restored.
func (r *Registry) Load() (int, error) {
	loaded := 0
	err := r.store.LoadAll(func(id int64, data []byte) error {
		r.idMu.Lock()
		if id >= r.nextID {
			r.nextID = id + 1
		}
		r.idMu.Unlock()

		r.mu.RLock()
		_, exists := r.trees[id]
		r.mu.RUnlock()
		if exists {
			r.logger.Debug("tree already loaded, skipping", "id", id)
			return nil
		}

		tree, err := validator.LoadTree(data, validator.ModeUpdate)
		if err != nil {
			return fmt.Errorf("registry: load tree %d: %w", id, err)
		}
		tree.ID = id

		r.mu.Lock()
		if _, exists := r.trees[id]; exists {
			r.mu.Unlock()
			return nil
		}
		r.trees[id] = &entry{tree: tree}
		r.mu.Unlock()

		loaded++
		return nil
	})
	if err != nil {
		return loaded, err
	}
	r.logger.Info("trees loaded", "count", loaded)
	return loaded, nil
}

func parsePath(expr string) (*pathexpr.Path, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	return pathexpr.Parse(expr)
}
