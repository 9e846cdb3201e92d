package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func townTree() *Node {
	return &Node{Name: "town", Type: NodeWorld, Children: []*Node{
		{Name: "Hobbs Cafe", Type: NodeBuilding, Children: []*Node{
			{Name: "kitchen", Type: NodeRoom, Children: []*Node{
				{Name: "stove", Type: NodeObject, State: "off"},
				{Name: "counter", Type: NodeObject, State: "clean"},
			}},
			{Name: "dining room", Type: NodeRoom, Children: []*Node{
				{Name: "table", Type: NodeObject},
			}},
		}},
		{Name: "Lin family house", Type: NodeBuilding, Children: []*Node{
			{Name: "kitchen", Type: NodeRoom, Children: []*Node{
				{Name: "stove", Type: NodeObject, State: "on"},
			}},
		}},
	}}
}

func TestNew_NilRoot(t *testing.T) {
	e := New(nil)
	require.NotNil(t, e.Root())
	assert.Equal(t, NodeWorld, e.Root().Type)
	assert.Nil(t, e.FindNode("anything"))
}

func TestFindNode(t *testing.T) {
	e := New(townTree())

	got := e.FindNode("hobbs")
	require.NotNil(t, got)
	assert.Equal(t, "Hobbs Cafe", got.Name)

	// Duplicate names resolve to the first match in definition order.
	kitchen := e.FindNode("kitchen")
	require.NotNil(t, kitchen)
	assert.Equal(t, "stove", kitchen.Children[0].Name)
	assert.Equal(t, "off", kitchen.Children[0].State)

	assert.Nil(t, e.FindNode("lighthouse"))
}

func TestFindNodeByPath(t *testing.T) {
	e := New(townTree())

	stove := e.FindNodeByPath("Lin family house", "kitchen", "stove")
	require.NotNil(t, stove)
	assert.Equal(t, "on", stove.State, "the path must disambiguate duplicate names")

	// Segment matching is case-insensitive but exact.
	assert.NotNil(t, e.FindNodeByPath("hobbs cafe", "kitchen"))
	assert.Nil(t, e.FindNodeByPath("Hobbs", "kitchen"))
	assert.Nil(t, e.FindNodeByPath("Hobbs Cafe", "cellar"))

	// An empty path is the root itself.
	assert.Equal(t, e.Root(), e.FindNodeByPath())
}

func TestObjectsIn(t *testing.T) {
	e := New(townTree())

	objects := e.ObjectsIn("Hobbs Cafe")
	require.Len(t, objects, 3)
	assert.Equal(t, "stove", objects[0].Name)
	assert.Equal(t, "counter", objects[1].Name)
	assert.Equal(t, "table", objects[2].Name)

	assert.Empty(t, e.ObjectsIn("lighthouse"))
}

func TestSetObjectState(t *testing.T) {
	e := New(townTree())

	require.True(t, e.SetObjectState("counter", "cluttered"))
	assert.Equal(t, "cluttered", e.FindNode("counter").State)

	assert.False(t, e.SetObjectState("kitchen", "anything"), "non-object nodes must be rejected")
	assert.False(t, e.SetObjectState("lighthouse", "anything"))
}

func TestDescribe(t *testing.T) {
	e := New(townTree())

	got := e.Describe("Hobbs Cafe")
	want := "town > Hobbs Cafe\n- stove: off\n- counter: clean\n- table: ordinary"
	assert.Equal(t, want, got)

	assert.Equal(t, "", e.Describe("lighthouse"))
}

func TestRestore(t *testing.T) {
	e := New(townTree())
	e.Restore(&Node{Name: "village", Type: NodeWorld})
	assert.Equal(t, "village", e.Root().Name)

	// Nil snapshots leave the tree untouched.
	e.Restore(nil)
	assert.Equal(t, "village", e.Root().Name)
}

func TestRestore_DetachesFromSnapshot(t *testing.T) {
	snap := &Node{Name: "village", Type: NodeWorld, Children: []*Node{
		{Name: "well", Type: NodeObject, State: "full"},
	}}
	e := New(nil)
	e.Restore(snap)

	snap.Children[0].State = "poisoned"
	assert.Equal(t, "full", e.Root().Children[0].State)
}

func TestNodeClone(t *testing.T) {
	orig := townTree()
	cp := orig.Clone()

	assert.Equal(t, orig, cp)
	cp.Children[0].Name = "renamed"
	assert.NotEqual(t, orig.Children[0].Name, cp.Children[0].Name)

	var nilNode *Node
	assert.Nil(t, nilNode.Clone())
}
