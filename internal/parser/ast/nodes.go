package ast

import (
	"bytes"
)

// Node is the base interface for all AST nodes
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement represents a standalone SQL statement
type Statement interface {
	Node
	statementNode()
}

// Identifier represents a schema or table name
type Identifier struct {
	TokenLiteralValue string // The token literal (e.g. "t_order")
	Value             string // The value (e.g. "t_order")
}

func (i *Identifier) TokenLiteral() string { return i.TokenLiteralValue }
func (i *Identifier) String() string       { return i.Value }

// ShowTableStatusStatement: SHOW TABLE STATUS [FROM|IN schema]
type ShowTableStatusStatement struct {
	Schema *Identifier // nil when no schema was given
}

func (s *ShowTableStatusStatement) statementNode()       {}
func (s *ShowTableStatusStatement) TokenLiteral() string { return "SHOW" }
func (s *ShowTableStatusStatement) String() string {
	var out bytes.Buffer
	out.WriteString("SHOW TABLE STATUS")
	if s.Schema != nil {
		out.WriteString(" FROM ")
		out.WriteString(s.Schema.String())
	}
	return out.String()
}

// ShowTablesStatement: SHOW TABLES [FROM|IN schema]
type ShowTablesStatement struct {
	Schema *Identifier
}

func (s *ShowTablesStatement) statementNode()       {}
func (s *ShowTablesStatement) TokenLiteral() string { return "SHOW" }
func (s *ShowTablesStatement) String() string {
	var out bytes.Buffer
	out.WriteString("SHOW TABLES")
	if s.Schema != nil {
		out.WriteString(" FROM ")
		out.WriteString(s.Schema.String())
	}
	return out.String()
}

// ShowCreateTableStatement: SHOW CREATE TABLE [schema.]table
type ShowCreateTableStatement struct {
	Schema    *Identifier
	TableName *Identifier
}

func (s *ShowCreateTableStatement) statementNode()       {}
func (s *ShowCreateTableStatement) TokenLiteral() string { return "SHOW" }
func (s *ShowCreateTableStatement) String() string {
	var out bytes.Buffer
	out.WriteString("SHOW CREATE TABLE ")
	if s.Schema != nil {
		out.WriteString(s.Schema.String())
		out.WriteString(".")
	}
	out.WriteString(s.TableName.String())
	return out.String()
}
