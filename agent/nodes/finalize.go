package nodes

import statex "github.com/tanpawarit/Chative-Order-Assistant/agent/state"

// Finalize hands the located orders back to the caller; nil means the user gave up.
func Finalize(in *GraphState) (statex.OrderContext, error) {
	if err := checkState(in); err != nil {
		return nil, err
	}
	if len(in.Orders) == 0 {
		return nil, nil
	}
	return in.Orders, nil
}
