package repl

const banner = `ITL REPL — Ctrl+D to exit. Type ":help" for commands.`

const helpText = `
Meta-commands:
  :help            show this text
  :syntax          show a short language syntax summary
  :screen          redraw the terminal grid as currently held by the host
  :vars            list currently-defined variable cells
  :array           show the live portion of the numeric array
  :lines           list the program store's segments, numbered
  :clear           clear variables and the array, keep the program store
  :reset           clear everything, including the program store
  :debug V         byte-dump a single variable cell
  :exit / :quit    leave the REPL
`

const syntaxText = `
Segments are separated by ';' or a newline.
  ?expr            print expr
  #expr            jump to the segment numbered by expr
  V=expr           assign expr to variable V (A-Z, _)
  V op expr        self-referential shorthand: V = V op expr
  V                bare variable name: undefines V
  V@i=expr         write expr into the array at index i
  @i               read the array at index i
  (item;item;...)  paren-block: value is the last item; "V=expr" as the
                   last item compares instead of assigning
  "text"           string literal with \n \t \r \\ \" and \nnn octal escapes
  'expr            seed the RNG; bare ' draws a random number
  :                (as primary) poll a queued key, non-blocking; 0 if none
  ?                (as primary) blocking line read, returns the typed line
  #                (as primary) the current segment's number
  $v               flip v's type: number <-> string
  !v               logical not
Operators (strictly left-to-right, no precedence): + - * / % ^ & | < > =
`

func debugHelpHeader(name byte) string {
	return "debug " + string(name) + ":"
}
