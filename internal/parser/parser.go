package parser

import (
	"fmt"

	"github.com/leengari/shardmerge/internal/parser/ast"
	"github.com/leengari/shardmerge/internal/parser/lexer"
)

type Parser struct {
	tokens  []lexer.Token
	curPos  int
	curTok  lexer.Token
	peekTok lexer.Token
}

func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens, curPos: 0}
	// Read two tokens to set curTok and peekTok
	p.nextToken()
	p.nextToken()
	return p
}

// ParseString tokenizes and parses a single statement
func ParseString(input string) (ast.Statement, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, fmt.Errorf("lexer error: %w", err)
	}
	return New(tokens).Parse()
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	if p.curPos < len(p.tokens) {
		p.peekTok = p.tokens[p.curPos]
		p.curPos++
	} else {
		p.peekTok = lexer.Token{Type: lexer.EOF}
	}
}

func (p *Parser) Parse() (ast.Statement, error) {
	if p.curTok.Type != lexer.SHOW {
		return nil, fmt.Errorf("unexpected token %q, expected SHOW", p.curTok.Literal)
	}
	p.nextToken()

	var (
		stmt ast.Statement
		err  error
	)
	switch p.curTok.Type {
	case lexer.TABLE:
		stmt, err = p.parseTableStatus()
	case lexer.TABLES:
		stmt, err = p.parseTables()
	case lexer.CREATE:
		stmt, err = p.parseCreateTable()
	default:
		return nil, fmt.Errorf("unsupported SHOW statement near %q", p.curTok.Literal)
	}
	if err != nil {
		return nil, err
	}

	// Semicolon (Optional)
	if p.curTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}
	if p.curTok.Type != lexer.EOF {
		return nil, fmt.Errorf("unexpected trailing token %q", p.curTok.Literal)
	}
	return stmt, nil
}

func (p *Parser) parseTableStatus() (*ast.ShowTableStatusStatement, error) {
	// TABLE
	p.nextToken()

	if p.curTok.Type != lexer.STATUS {
		return nil, fmt.Errorf("expected STATUS, got %s", p.curTok.Literal)
	}
	p.nextToken()

	schema, err := p.parseOptionalSchema()
	if err != nil {
		return nil, err
	}
	return &ast.ShowTableStatusStatement{Schema: schema}, nil
}

func (p *Parser) parseTables() (*ast.ShowTablesStatement, error) {
	// TABLES
	p.nextToken()

	schema, err := p.parseOptionalSchema()
	if err != nil {
		return nil, err
	}
	return &ast.ShowTablesStatement{Schema: schema}, nil
}

func (p *Parser) parseCreateTable() (*ast.ShowCreateTableStatement, error) {
	// CREATE
	p.nextToken()

	if p.curTok.Type != lexer.TABLE {
		return nil, fmt.Errorf("expected TABLE, got %s", p.curTok.Literal)
	}
	p.nextToken()

	first, err := p.parseIdentifier("table name")
	if err != nil {
		return nil, err
	}

	stmt := &ast.ShowCreateTableStatement{TableName: first}
	if p.curTok.Type == lexer.DOT {
		p.nextToken()
		table, err := p.parseIdentifier("table name")
		if err != nil {
			return nil, err
		}
		stmt.Schema = first
		stmt.TableName = table
	}
	return stmt, nil
}

// parseOptionalSchema handles [FROM|IN schema]
func (p *Parser) parseOptionalSchema() (*ast.Identifier, error) {
	if p.curTok.Type != lexer.FROM && p.curTok.Type != lexer.IN {
		return nil, nil
	}
	p.nextToken()
	return p.parseIdentifier("schema name")
}

func (p *Parser) parseIdentifier(what string) (*ast.Identifier, error) {
	if p.curTok.Type != lexer.IDENTIFIER {
		return nil, fmt.Errorf("expected %s, got %q", what, p.curTok.Literal)
	}
	id := &ast.Identifier{TokenLiteralValue: p.curTok.Literal, Value: p.curTok.Literal}
	p.nextToken()
	return id, nil
}
