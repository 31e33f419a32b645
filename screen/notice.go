package screen

// NoticeKind tells error notices from success notices.
type NoticeKind int

const (
	NoticeError NoticeKind = iota
	NoticeSuccess
)

func (k NoticeKind) String() string {
	if k == NoticeSuccess {
		return "Success"
	}
	return "Error"
}

// Notice is a dismissible screen-level message.
type Notice struct {
	Kind    NoticeKind
	Message string
}

func errorNotice(msg string) *Notice   { return &Notice{Kind: NoticeError, Message: msg} }
func successNotice(msg string) *Notice { return &Notice{Kind: NoticeSuccess, Message: msg} }

// FieldErrors maps a form field to its inline validation message.
type FieldErrors map[string]string

// notices is embedded by controllers.
type notices struct {
	notice *Notice
}

// Notice returns the pending notice, or nil.
func (n *notices) Notice() *Notice { return n.notice }

// DismissNotice clears the pending notice.
func (n *notices) DismissNotice() { n.notice = nil }
