package model

// NodeType tags the syntax category a descriptor was built from.
type NodeType string

// Node types carry the extractor's syntax tree names.
const (
	// NodeMethodDefinition tags a method in a class body.
	NodeMethodDefinition NodeType = "MethodDefinition"
	// NodePropertyDefinition tags a class field.
	NodePropertyDefinition NodeType = "PropertyDefinition"
	// NodeArrowFunction tags an arrow function expression.
	NodeArrowFunction NodeType = "ArrowFunctionExpression"
	// NodeAssignment tags an assignment expression.
	NodeAssignment NodeType = "AssignmentExpression"
	// NodeClassDeclaration tags a class declaration or expression.
	NodeClassDeclaration NodeType = "ClassDeclaration"
	// NodeFunctionDeclaration tags a function declaration or expression.
	NodeFunctionDeclaration NodeType = "FunctionDeclaration"
	// NodeObjectExpression tags an object literal.
	NodeObjectExpression NodeType = "ObjectExpression"
	// NodeExportDefault tags an export default statement.
	NodeExportDefault NodeType = "ExportDefaultDeclaration"
)

// Node is a lightweight, read-only description of the syntax node a doclet came from.
// The set of implementations is closed; switch on the concrete pointer type.
type Node interface {
	Type() NodeType
	// Static reports whether the node was declared with the static modifier.
	Static() bool

	node()
}

// Key is a class element key. Private keys were written with the sigil in source.
type Key struct {
	Name    string
	Private bool
}

// PrivateName returns the key rendered with the private sigil when the key is private.
func (k Key) PrivateName() string {
	if !k.Private {
		return k.Name
	}

	return WithSigil(k.Name)
}

// MethodDefinition is a method written in a class body.
type MethodDefinition struct {
	Key      Key
	IsStatic bool
	// Class is the class whose body directly contains the method, nil otherwise.
	Class *ClassDeclaration
}

// PropertyDefinition is a class field, with an optional initializer.
type PropertyDefinition struct {
	Key      Key
	IsStatic bool
	Class    *ClassDeclaration
	Value    Node
}

// ArrowFunction is an arrow function expression.
type ArrowFunction struct {
	// Parent is the lexical parent node, nil when unknown.
	Parent Node
}

// MemberAccess is an object.property reference on the left of an assignment.
type MemberAccess struct {
	Object   string
	Property Key
}

// Assignment is an assignment expression such as this.#x = 1.
type Assignment struct {
	Left  MemberAccess
	Value Node
}

// ClassDeclaration is a class declaration or expression. Name is empty for anonymous classes.
type ClassDeclaration struct {
	Name          string
	DefaultExport bool
}

// FunctionDeclaration is a function declaration or expression.
type FunctionDeclaration struct {
	Name          string
	DefaultExport bool
}

// ObjectExpression is an object literal. Keys lists property keys in source order.
type ObjectExpression struct {
	Keys          []string
	DefaultExport bool
}

// ExportDefault is an export default statement wrapping a declaration.
type ExportDefault struct {
	Declaration Node
}

// Type implements Node.
func (*MethodDefinition) Type() NodeType { return NodeMethodDefinition }

// Type implements Node.
func (*PropertyDefinition) Type() NodeType { return NodePropertyDefinition }

// Type implements Node.
func (*ArrowFunction) Type() NodeType { return NodeArrowFunction }

// Type implements Node.
func (*Assignment) Type() NodeType { return NodeAssignment }

// Type implements Node.
func (*ClassDeclaration) Type() NodeType { return NodeClassDeclaration }

// Type implements Node.
func (*FunctionDeclaration) Type() NodeType { return NodeFunctionDeclaration }

// Type implements Node.
func (*ObjectExpression) Type() NodeType { return NodeObjectExpression }

// Type implements Node.
func (*ExportDefault) Type() NodeType { return NodeExportDefault }

// Static implements Node.
func (n *MethodDefinition) Static() bool { return n.IsStatic }

// Static implements Node.
func (n *PropertyDefinition) Static() bool { return n.IsStatic }

// Static implements Node. Only class elements can be static.
func (*ArrowFunction) Static() bool { return false }

// Static implements Node.
func (*Assignment) Static() bool { return false }

// Static implements Node.
func (*ClassDeclaration) Static() bool { return false }

// Static implements Node.
func (*FunctionDeclaration) Static() bool { return false }

// Static implements Node.
func (*ObjectExpression) Static() bool { return false }

// Static implements Node.
func (*ExportDefault) Static() bool { return false }

func (*MethodDefinition) node()    {}
func (*PropertyDefinition) node()  {}
func (*ArrowFunction) node()       {}
func (*Assignment) node()          {}
func (*ClassDeclaration) node()    {}
func (*FunctionDeclaration) node() {}
func (*ObjectExpression) node()    {}
func (*ExportDefault) node()       {}

// IsStatic reports whether n is non-nil and carries the static flag.
func IsStatic(n Node) bool {
	return n != nil && n.Static()
}

// PrivateKey returns the private key of a method or field descriptor.
func PrivateKey(n Node) (Key, bool) {
	switch v := n.(type) {
	case *MethodDefinition:
		return v.Key, v.Key.Private
	case *PropertyDefinition:
		return v.Key, v.Key.Private
	}

	return Key{}, false
}

// DefaultExportDeclaration unwraps the declaration a default export introduces.
// It accepts either the export statement itself or a declaration flagged as reached through one.
func DefaultExportDeclaration(n Node) (Node, bool) {
	switch v := n.(type) {
	case *ExportDefault:
		switch v.Declaration.(type) {
		case *ClassDeclaration, *FunctionDeclaration, *ObjectExpression:
			return v.Declaration, true
		}
	case *ClassDeclaration:
		return v, v.DefaultExport
	case *FunctionDeclaration:
		return v, v.DefaultExport
	case *ObjectExpression:
		return v, v.DefaultExport
	}

	return nil, false
}
