package controlflow

import (
	"fmt"

	"github.com/Chris-Enlow/PLC-Project/internal/diagnostics"
	"github.com/Chris-Enlow/PLC-Project/internal/frontend/ast"
	"github.com/Chris-Enlow/PLC-Project/internal/source"
	"github.com/Chris-Enlow/PLC-Project/internal/types"
)

// ControlFlowGraph is the block graph of one method body.
type ControlFlowGraph struct {
	Entry *BasicBlock
	Exit  *BasicBlock // virtual
}

// BasicBlock is a run of statements with a single entry.
type BasicBlock struct {
	ID           int
	Statements   []ast.Statement
	Successors   []*BasicBlock
	Predecessors []*BasicBlock
	Returns      bool
	CanFallThru  bool
	BranchKind   string // "IF", "ELSE", "loop"
	Origin       ast.Statement
}

// Builder builds graphs and collects warnings for one source text.
type Builder struct {
	filename     string
	text         string
	blockCounter int
	warnings     []*diagnostics.Diagnostic
}

func NewBuilder(filename, text string) *Builder {
	return &Builder{filename: filename, text: text}
}

func (b *Builder) newBlock() *BasicBlock {
	b.blockCounter++
	return &BasicBlock{ID: b.blockCounter, CanFallThru: true}
}

func addEdge(from, to *BasicBlock) {
	if from != nil && to != nil {
		from.Successors = append(from.Successors, to)
		to.Predecessors = append(to.Predecessors, from)
	}
}

// BuildMethodCFG builds the graph of method's body.
func (b *Builder) BuildMethodCFG(method *ast.Method) *ControlFlowGraph {
	cfg := &ControlFlowGraph{Entry: b.newBlock(), Exit: b.newBlock()}
	if last := b.buildBlock(method.Statements, cfg.Entry, cfg.Exit); last != nil && last.CanFallThru {
		addEdge(last, cfg.Exit)
	}
	return cfg
}

// buildBlock threads stmts through current. A nil result means control
// never leaves the block normally.
func (b *Builder) buildBlock(stmts []ast.Statement, current, exit *BasicBlock) *BasicBlock {
	var unreachable []ast.Statement
	for _, stmt := range stmts {
		if current == nil {
			unreachable = append(unreachable, stmt)
			continue
		}
		current = b.buildStatement(stmt, current, exit)
	}
	if len(unreachable) > 0 {
		b.reportUnreachable(unreachable[0], unreachable[len(unreachable)-1])
	}
	return current
}

func (b *Builder) buildStatement(stmt ast.Statement, current, exit *BasicBlock) *BasicBlock {
	switch s := stmt.(type) {
	case *ast.ReturnStmt:
		current.Statements = append(current.Statements, s)
		current.Returns = true
		current.CanFallThru = false
		addEdge(current, exit)
		return nil
	case *ast.IfStmt:
		return b.buildIf(s, current, exit)
	case *ast.ForStmt:
		return b.buildLoop(s, s.Body, current, exit)
	case *ast.WhileStmt:
		return b.buildLoop(s, s.Body, current, exit)
	default:
		current.Statements = append(current.Statements, stmt)
		return current
	}
}

func (b *Builder) branch(kind string, origin ast.Statement, from *BasicBlock) *BasicBlock {
	block := b.newBlock()
	block.BranchKind = kind
	block.Origin = origin
	addEdge(from, block)
	return block
}

func (b *Builder) buildIf(stmt *ast.IfStmt, current, exit *BasicBlock) *BasicBlock {
	current.Statements = append(current.Statements, stmt)

	afterThen := b.buildBlock(stmt.Then, b.branch("IF", stmt, current), exit)
	afterElse := b.buildBlock(stmt.Else, b.branch("ELSE", stmt, current), exit)

	merge := b.newBlock()
	if afterThen != nil && afterThen.CanFallThru {
		addEdge(afterThen, merge)
	}
	if afterElse != nil && afterElse.CanFallThru {
		addEdge(afterElse, merge)
	}
	if len(merge.Predecessors) == 0 {
		return nil
	}
	return merge
}

// buildLoop models FOR and WHILE alike: the condition may fail before the
// first iteration, so the block after the loop is always reachable.
func (b *Builder) buildLoop(stmt ast.Statement, body []ast.Statement, current, exit *BasicBlock) *BasicBlock {
	current.Statements = append(current.Statements, stmt)

	header := b.newBlock()
	addEdge(current, header)
	after := b.newBlock()
	addEdge(header, after)

	if last := b.buildBlock(body, b.branch("loop", stmt, header), exit); last != nil && last.CanFallThru {
		addEdge(last, header)
	}
	return after
}

func (b *Builder) location(r source.Range) *source.Location {
	return r.Location(b.filename, b.text)
}

func (b *Builder) reportUnreachable(first, last ast.Statement) {
	span := source.NewRange(first.Loc().Start, last.Loc().End)
	b.warnings = append(b.warnings,
		diagnostics.NewWarning("unreachable code").
			WithCode(diagnostics.WarnUnreachableCode).
			WithPrimaryLabel(b.filename, b.location(span), "this code will never execute").
			WithHelp("remove this code or restructure control flow"),
	)
}

// AnalyzeReturns warns when a method declared to return a value can reach
// its end without a RETURN. Such a method yields NIL at run time.
func (b *Builder) AnalyzeReturns(method *ast.Method, cfg *ControlFlowGraph) {
	if method.ReturnTypeName == "" || method.ReturnTypeName == string(types.TYPE_NIL) {
		return
	}
	if allPathsReturn(cfg) {
		return
	}
	diag := diagnostics.NewWarning(fmt.Sprintf("not all code paths in method '%s' return a value of type %s",
		method.Name, method.ReturnTypeName)).
		WithCode(diagnostics.WarnMissingReturn).
		WithPrimaryLabel(b.filename, b.location(method.Loc()), "missing RETURN on some paths")
	for _, block := range findMissingReturnBranches(cfg) {
		loc := b.location(block.Origin.Loc())
		diag.WithSecondaryLabel(loc, fmt.Sprintf("%s branch at line %d can finish without RETURN", block.BranchKind, loc.Start.Line))
	}
	b.warnings = append(b.warnings, diag.WithHelp("add a RETURN at the end of the method"))
}

func allPathsReturn(cfg *ControlFlowGraph) bool {
	return !canReachExitWithoutReturn(cfg.Entry, cfg.Exit, make(map[*BasicBlock]bool))
}

func canReachExitWithoutReturn(current, exit *BasicBlock, visited map[*BasicBlock]bool) bool {
	if current == nil || visited[current] {
		return false
	}
	visited[current] = true
	if current == exit {
		return true
	}
	if current.Returns {
		return false
	}
	for _, succ := range current.Successors {
		if canReachExitWithoutReturn(succ, exit, visited) {
			return true
		}
	}
	return false
}

// findMissingReturnBranches lists the branch heads from which the exit is
// reachable without a RETURN, one per originating statement and kind.
func findMissingReturnBranches(cfg *ControlFlowGraph) []*BasicBlock {
	type key struct {
		origin ast.Statement
		kind   string
	}
	seen := make(map[key]bool)
	var missing []*BasicBlock
	var walk func(block *BasicBlock, visited map[*BasicBlock]bool)
	walk = func(block *BasicBlock, visited map[*BasicBlock]bool) {
		if visited[block] {
			return
		}
		visited[block] = true
		if block.Origin != nil && !seen[key{block.Origin, block.BranchKind}] &&
			canReachExitWithoutReturn(block, cfg.Exit, make(map[*BasicBlock]bool)) {
			seen[key{block.Origin, block.BranchKind}] = true
			missing = append(missing, block)
		}
		for _, succ := range block.Successors {
			walk(succ, visited)
		}
	}
	walk(cfg.Entry, make(map[*BasicBlock]bool))
	return missing
}

// Analyze builds every method's graph and returns the warnings found.
func Analyze(filename, text string, src *ast.Source) []*diagnostics.Diagnostic {
	b := NewBuilder(filename, text)
	for _, method := range src.Methods {
		b.AnalyzeReturns(method, b.BuildMethodCFG(method))
	}
	return b.warnings
}
