package objects

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// GameObject is the highest level interface for game related types.
type GameObject interface {
	Lifecycle

	GetID() string
	GetChildren() []GameObject
	AddChild(child GameObject) error
	RemoveChild(id string) error
}

// BaseObject provides identity and child management for scene content.
type BaseObject struct {
	id       string
	children []GameObject
}

func NewBaseObject(id string) *BaseObject {
	return &BaseObject{
		id: id,
	}
}

func (o *BaseObject) GetID() string {
	return o.id
}

func (o *BaseObject) GetChildren() []GameObject {
	return o.children
}

func (o *BaseObject) AddChild(child GameObject) error {
	for _, existing := range o.children {
		if existing.GetID() == child.GetID() {
			return fmt.Errorf("child %s already exists", child.GetID())
		}
	}
	o.children = append(o.children, child)
	return nil
}

func (o *BaseObject) RemoveChild(id string) error {
	for i, child := range o.children {
		if child.GetID() == id {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("child %s not found", id)
}

func (o *BaseObject) Init() error {
	return nil
}

func (o *BaseObject) Destroy() error {
	return nil
}

func (o *BaseObject) Update() error {
	return nil
}

func (o *BaseObject) Draw(screen *ebiten.Image) {
}

// InitTree initializes an object and all of its children.
func InitTree(obj GameObject) error {
	if err := obj.Init(); err != nil {
		return fmt.Errorf("failed to init %s: %v", obj.GetID(), err)
	}
	for _, child := range obj.GetChildren() {
		if err := InitTree(child); err != nil {
			return err
		}
	}
	return nil
}

// DestroyTree destroys an object and all of its children.
func DestroyTree(obj GameObject) error {
	for _, child := range obj.GetChildren() {
		if err := DestroyTree(child); err != nil {
			return err
		}
	}
	if err := obj.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy %s: %v", obj.GetID(), err)
	}
	return nil
}

// UpdateTree updates an object and all of its children.
func UpdateTree(obj GameObject) error {
	if err := obj.Update(); err != nil {
		return fmt.Errorf("failed to update %s: %v", obj.GetID(), err)
	}
	for _, child := range obj.GetChildren() {
		if err := UpdateTree(child); err != nil {
			return err
		}
	}
	return nil
}

// DrawTree draws an object and all of its children.
func DrawTree(obj GameObject, screen *ebiten.Image) {
	obj.Draw(screen)
	for _, child := range obj.GetChildren() {
		DrawTree(child, screen)
	}
}
