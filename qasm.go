package qtoken

import (
	"fmt"
	"strings"
)

/*
QASM renders the program as OpenQASM 2.0. The classical register is only
declared when the program measures something.
*/
func (p *Program) QASM() string {
	var circuit strings.Builder

	circuit.WriteString("OPENQASM 2.0;\n")
	circuit.WriteString("include \"qelib1.inc\";\n")
	circuit.WriteString("\n")

	fmt.Fprintf(&circuit, "qreg q[%d];\n", p.NumQubits)
	if p.NumClbits > 0 {
		fmt.Fprintf(&circuit, "creg c[%d];\n", p.NumClbits)
	}
	circuit.WriteString("\n")

	for _, op := range p.Ops {
		circuit.WriteString(op.String())
		circuit.WriteString(";\n")
	}

	return circuit.String()
}
