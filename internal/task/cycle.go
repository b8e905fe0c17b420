package task

// CycleDetector decides whether a proposed dependency edge would close a
// cycle in the existing edge set. It never mutates the graph and must be
// consulted before the candidate edge is inserted.
type CycleDetector struct {
	store GraphStore
}

// NewCycleDetector returns a detector reading from the given store.
func NewCycleDetector(store GraphStore) *CycleDetector {
	return &CycleDetector{store: store}
}

// WouldCreateCycle reports whether inserting the edge dependent -> prerequisite
// would make the graph cyclic. A cycle exists exactly when the prerequisite can
// already reach the dependent by following prerequisite edges. On detection,
// path holds a real chain of task ids from prerequisiteID to dependentID.
func (d *CycleDetector) WouldCreateCycle(dependentID, prerequisiteID string) (bool, []string, error) {
	if dependentID == prerequisiteID {
		return true, []string{dependentID}, nil
	}

	// parent records how each node was first reached, for path reconstruction.
	parent := make(map[string]string)
	found := false

	err := traverse(prerequisiteID,
		func(id string) ([]string, error) {
			prereqs, err := d.store.ListEdgesByDependent(id)
			if err != nil {
				return nil, err
			}
			for _, p := range prereqs {
				if _, seen := parent[p]; !seen && p != prerequisiteID {
					parent[p] = id
				}
			}
			return prereqs, nil
		},
		func(id string) (bool, error) {
			if id == dependentID {
				found = true
				return true, nil
			}
			return false, nil
		})
	if err != nil {
		return false, nil, err
	}
	if !found {
		return false, nil, nil
	}

	// Walk parents back from the dependent to the prerequisite, then reverse.
	var path []string
	for id := dependentID; ; {
		path = append(path, id)
		if id == prerequisiteID {
			break
		}
		id = parent[id]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return true, path, nil
}
