package main

import "gridCalc/contracts"

type displaySinkChain []contracts.DisplaySink

func (chain displaySinkChain) RenderCell(row int, col int, text string) {
	for _, sink := range chain {
		sink.RenderCell(row, col, text)
	}
}

// NewDisplaySinkChain renders every cell to each non nil sink in order
func NewDisplaySinkChain(sinks ...contracts.DisplaySink) contracts.DisplaySink {
	chain := make(displaySinkChain, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			chain = append(chain, sink)
		}
	}

	if len(chain) == 1 {
		return chain[0]
	}

	return chain
}
