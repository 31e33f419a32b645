package screen

import "sync"

// RouteName identifies a screen.
type RouteName string

const (
	RouteLogin      RouteName = "Login"
	RouteSignup     RouteName = "Signup"
	RouteHome       RouteName = "Home"
	RouteCreateTask RouteName = "CreateTask"
	RouteTaskList   RouteName = "TaskList"
	RouteEditTask   RouteName = "EditTask"
)

// ParamTask is the EditTask route parameter holding the api.Task being edited.
const ParamTask = "task"

// Route is one entry of the navigation stack.
type Route struct {
	Name   RouteName
	Params map[string]any
}

// Navigator is a stack of routes. It starts at Login and is never empty.
type Navigator struct {
	mu    sync.RWMutex
	stack []Route
}

// NewNavigator returns a navigator positioned at Login.
func NewNavigator() *Navigator {
	return &Navigator{stack: []Route{{Name: RouteLogin}}}
}

// Current returns the top route.
func (n *Navigator) Current() Route {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.stack[len(n.stack)-1]
}

// Stack returns a copy of the stack, root first.
func (n *Navigator) Stack() []Route {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Route, len(n.stack))
	copy(out, n.stack)
	return out
}

// Navigate goes to name. If the route is already on the stack everything above
// it is popped and its params are replaced; otherwise it is pushed.
func (n *Navigator) Navigate(name RouteName, params map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.stack) - 1; i >= 0; i-- {
		if n.stack[i].Name == name {
			n.stack = n.stack[:i+1]
			if params != nil {
				n.stack[i].Params = params
			}
			return
		}
	}
	n.stack = append(n.stack, Route{Name: name, Params: params})
}

// Replace swaps the top route.
func (n *Navigator) Replace(name RouteName, params map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack[len(n.stack)-1] = Route{Name: name, Params: params}
}

// Reset makes r the only route.
func (n *Navigator) Reset(r Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack = []Route{r}
}

// Back pops the top route. It reports false at the root.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.stack) == 1 {
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return true
}
