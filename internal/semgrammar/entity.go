package semgrammar

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EntityInstance is one member of an EntityCategory: display text, the
// category it belongs to, and a globally unique string id used as the
// synthesized semantic argument.
type EntityInstance struct {
	Text     string
	Category string
	ID       string
}

// EntityCategory is a unique placeholder ({category}) holding an ordered set
// of entity instances.
type EntityCategory struct {
	Name      string
	instances []*EntityInstance
	byText    map[string]*EntityInstance // keyed by lowercased text
	DefSite   SourceLoc
}

// Instances returns the category's members in declaration order.
func (c *EntityCategory) Instances() []*EntityInstance {
	out := make([]*EntityInstance, len(c.instances))
	copy(out, c.instances)
	return out
}

// Lookup finds an instance by its display text, case-insensitively.
func (c *EntityCategory) Lookup(text string) (*EntityInstance, bool) {
	inst, ok := c.byText[strings.ToLower(text)]
	return inst, ok
}

// AddInstance adds a new entity with the given display text to the
// category. If id is empty, a uuid v4 is minted; an explicit id may be
// supplied for deterministic fixtures or JSON round-trip. Fails with
// DuplicateEntity if an instance with the same (case-insensitive) text
// already exists.
func (c *EntityCategory) AddInstance(text, id string, loc SourceLoc) (*EntityInstance, error) {
	key := strings.ToLower(text)
	if c.byText == nil {
		c.byText = map[string]*EntityInstance{}
	}
	if _, exists := c.byText[key]; exists {
		return nil, errDuplicateEntity(c.Name, text, loc)
	}
	if text == "" {
		return nil, errIllFormedEntityCategory(c.Name, "entity text must not be empty", loc)
	}
	if id == "" {
		id = uuid.NewString()
	}
	inst := &EntityInstance{Text: text, Category: c.Name, ID: id}
	c.instances = append(c.instances, inst)
	c.byText[key] = inst
	return inst, nil
}

func (c *EntityCategory) String() string {
	names := make([]string, len(c.instances))
	for i, inst := range c.instances {
		names[i] = inst.Text
	}
	return fmt.Sprintf("{%s}=[%s]", c.Name, strings.Join(names, ", "))
}
