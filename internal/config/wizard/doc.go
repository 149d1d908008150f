// Package wizard collects the choices needed to launch a project.
//
// It implements the interactive questions (mission, deployment type, cluster,
// runtime and project name) with charmbracelet/huh. The answers are kept in a
// typed Selections value that both the interactive and the flag driven paths
// fill and validate the same way.
//
// RuntimeStep filters the booster catalog: it offers only the runtimes that
// have a booster for the chosen mission and, for continuous delivery, that
// can run on the chosen cluster type.
package wizard
