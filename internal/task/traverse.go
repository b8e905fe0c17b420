package task

// Cycle detection and status cascading are both reachability walks over the
// same edge set; only the direction differs. traverse is the shared
// breadth-first primitive both are built on.

// neighborFunc returns the ids adjacent to a node in the chosen direction
// (prerequisites-of for cycle checks, dependents-of for cascades).
type neighborFunc func(id string) ([]string, error)

// visitFunc is called once per reached node, in BFS order, starting with the
// start node itself. Returning stop=true halts the walk early.
type visitFunc func(id string) (stop bool, err error)

// traverse walks the graph breadth-first from start, following neighbors and
// marking visited ids so an acyclic graph of N nodes and E edges finishes in
// O(N+E). The visited set also keeps diamond-shaped graphs from deriving the
// same node twice in one pass.
func traverse(start string, neighbors neighborFunc, visit visitFunc) error {
	visited := map[string]bool{start: true}
	queue := []string{start}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		stop, err := visit(id)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}

		next, err := neighbors(id)
		if err != nil {
			return err
		}
		for _, n := range next {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return nil
}
