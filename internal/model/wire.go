package model

// maxWireDepth bounds descriptor nesting accepted from decoded documents.
const maxWireDepth = 64

// NodeWire is the flat serialized form of a descriptor. Only the fields relevant to Type are set.
type NodeWire struct {
	Type          NodeType    `json:"type" yaml:"type" msgpack:"type"`
	Static        bool        `json:"static,omitempty" yaml:"static,omitempty" msgpack:"static,omitempty"`
	Key           string      `json:"key,omitempty" yaml:"key,omitempty" msgpack:"key,omitempty"`
	Private       bool        `json:"private,omitempty" yaml:"private,omitempty" msgpack:"private,omitempty"`
	Name          string      `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Keys          []string    `json:"keys,omitempty" yaml:"keys,omitempty" msgpack:"keys,omitempty"`
	DefaultExport bool        `json:"defaultExport,omitempty" yaml:"defaultExport,omitempty" msgpack:"defaultExport,omitempty"`
	Class         *NodeWire   `json:"class,omitempty" yaml:"class,omitempty" msgpack:"class,omitempty"`
	Parent        *NodeWire   `json:"parent,omitempty" yaml:"parent,omitempty" msgpack:"parent,omitempty"`
	Value         *NodeWire   `json:"value,omitempty" yaml:"value,omitempty" msgpack:"value,omitempty"`
	Left          *MemberWire `json:"left,omitempty" yaml:"left,omitempty" msgpack:"left,omitempty"`
	Declaration   *NodeWire   `json:"declaration,omitempty" yaml:"declaration,omitempty" msgpack:"declaration,omitempty"`
}

// MemberWire is the serialized left side of an assignment.
type MemberWire struct {
	Object   string `json:"object,omitempty" yaml:"object,omitempty" msgpack:"object,omitempty"`
	Property string `json:"property" yaml:"property" msgpack:"property"`
	Private  bool   `json:"private,omitempty" yaml:"private,omitempty" msgpack:"private,omitempty"`
}

// WireNode converts a descriptor to its serialized form. A nil descriptor yields nil.
func WireNode(n Node) *NodeWire {
	return wireNode(n, 0)
}

func wireNode(n Node, depth int) *NodeWire {
	if n == nil || depth > maxWireDepth {
		return nil
	}

	w := &NodeWire{Type: n.Type(), Static: n.Static()}

	switch v := n.(type) {
	case *MethodDefinition:
		w.Key, w.Private = v.Key.Name, v.Key.Private
		w.Class = wireClass(v.Class)
	case *PropertyDefinition:
		w.Key, w.Private = v.Key.Name, v.Key.Private
		w.Class = wireClass(v.Class)
		w.Value = wireNode(v.Value, depth+1)
	case *ArrowFunction:
		w.Parent = wireNode(v.Parent, depth+1)
	case *Assignment:
		w.Left = &MemberWire{Object: v.Left.Object, Property: v.Left.Property.Name, Private: v.Left.Property.Private}
		w.Value = wireNode(v.Value, depth+1)
	case *ClassDeclaration:
		w.Name, w.DefaultExport = v.Name, v.DefaultExport
	case *FunctionDeclaration:
		w.Name, w.DefaultExport = v.Name, v.DefaultExport
	case *ObjectExpression:
		w.Keys = append([]string(nil), v.Keys...)
		w.DefaultExport = v.DefaultExport
	case *ExportDefault:
		w.Declaration = wireNode(v.Declaration, depth+1)
	}

	return w
}

func wireClass(c *ClassDeclaration) *NodeWire {
	if c == nil {
		return nil
	}

	return &NodeWire{Type: NodeClassDeclaration, Name: c.Name, DefaultExport: c.DefaultExport}
}

// Node converts the serialized form back into a descriptor. Unknown types and nesting deeper
// than the accepted limit decode to nil, which every rule treats as "no descriptor".
func (w *NodeWire) Node() Node {
	return w.node(0)
}

func (w *NodeWire) node(depth int) Node {
	if w == nil || depth > maxWireDepth {
		return nil
	}

	switch w.Type {
	case NodeMethodDefinition:
		return &MethodDefinition{Key: Key{Name: w.Key, Private: w.Private}, IsStatic: w.Static, Class: w.Class.class()}
	case NodePropertyDefinition:
		return &PropertyDefinition{
			Key:      Key{Name: w.Key, Private: w.Private},
			IsStatic: w.Static,
			Class:    w.Class.class(),
			Value:    w.Value.node(depth + 1),
		}
	case NodeArrowFunction:
		return &ArrowFunction{Parent: w.Parent.node(depth + 1)}
	case NodeAssignment:
		a := &Assignment{Value: w.Value.node(depth + 1)}
		if w.Left != nil {
			a.Left = MemberAccess{Object: w.Left.Object, Property: Key{Name: w.Left.Property, Private: w.Left.Private}}
		}

		return a
	case NodeClassDeclaration:
		return w.class()
	case NodeFunctionDeclaration:
		return &FunctionDeclaration{Name: w.Name, DefaultExport: w.DefaultExport}
	case NodeObjectExpression:
		return &ObjectExpression{Keys: append([]string(nil), w.Keys...), DefaultExport: w.DefaultExport}
	case NodeExportDefault:
		return &ExportDefault{Declaration: w.Declaration.node(depth + 1)}
	}

	return nil
}

func (w *NodeWire) class() *ClassDeclaration {
	if w == nil || w.Type != NodeClassDeclaration {
		return nil
	}

	return &ClassDeclaration{Name: w.Name, DefaultExport: w.DefaultExport}
}
