//go:build windows

package automation

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Windows implementation using SendInput and the foreground-window APIs

var (
	user32                = windows.NewLazySystemDLL("user32.dll")
	procSendInput         = user32.NewProc("SendInput")
	procSetForeground     = user32.NewProc("SetForegroundWindow")
	procBringWindowToTop  = user32.NewProc("BringWindowToTop")
	procSetFocus          = user32.NewProc("SetFocus")
	procAttachThreadInput = user32.NewProc("AttachThreadInput")
	procIsIconic          = user32.NewProc("IsIconic")
	procIsWindow          = user32.NewProc("IsWindow")
	procShowWindow        = user32.NewProc("ShowWindow")
	procGetWindow         = user32.NewProc("GetWindow")
)

const (
	INPUT_KEYBOARD        = 1
	KEYEVENTF_EXTENDEDKEY = 0x0001
	KEYEVENTF_KEYUP       = 0x0002
	KEYEVENTF_UNICODE     = 0x0004
	SW_RESTORE            = 9
	GW_OWNER              = 4

	// keyDelay separates strokes so the target's message queue keeps up.
	keyDelay = 10 * time.Millisecond
)

type KEYBDINPUT struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type INPUT struct {
	Type uint32
	Ki   KEYBDINPUT
	_    [8]byte // pads KEYBDINPUT to the size of the MOUSEINPUT union member
}

// Attach finds a running process whose image path matches exePath.
func Attach(exePath string) (Application, error) {
	want := filepath.Clean(exePath)

	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("process snapshot: %w", err)
	}
	defer windows.CloseHandle(snap)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	for err = windows.Process32First(snap, &entry); err == nil; err = windows.Process32Next(snap, &entry) {
		path, perr := imagePath(entry.ProcessID)
		if perr != nil {
			continue
		}
		if strings.EqualFold(filepath.Clean(path), want) {
			return &application{pid: entry.ProcessID}, nil
		}
	}
	if err != windows.ERROR_NO_MORE_FILES {
		return nil, fmt.Errorf("process enumeration: %w", err)
	}
	return nil, fmt.Errorf("%w: %s", ErrProcessNotFound, exePath)
}

func imagePath(pid uint32) (string, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", err
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_LONG_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "", err
	}
	return windows.UTF16ToString(buf[:size]), nil
}

type application struct {
	pid uint32
}

// EnumWindows walks windows in z-order, so the first match is the topmost.
var (
	enumMu       sync.Mutex
	enumPID      uint32
	enumFound    windows.HWND
	enumCallback = syscall.NewCallback(enumWindowsProc)
)

func enumWindowsProc(hwnd windows.HWND, _ uintptr) uintptr {
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil || pid != enumPID {
		return 1
	}
	if !windows.IsWindowVisible(hwnd) {
		return 1
	}
	if owner, _, _ := procGetWindow.Call(uintptr(hwnd), GW_OWNER); owner != 0 {
		return 1
	}
	enumFound = hwnd
	return 0
}

func (a *application) TopWindow() (Window, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumPID, enumFound = a.pid, 0
	// EnumWindows reports an error when the callback stops enumeration early.
	_ = windows.EnumWindows(enumCallback, nil)
	if enumFound == 0 {
		return nil, fmt.Errorf("%w: pid %d", ErrWindowNotFound, a.pid)
	}
	return &window{hwnd: enumFound}, nil
}

// ForegroundWindow returns the window that currently has the user's focus.
func ForegroundWindow() (Window, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return nil, ErrWindowNotFound
	}
	return &window{hwnd: hwnd}, nil
}

type window struct {
	hwnd windows.HWND
}

func (w *window) String() string {
	return fmt.Sprintf("hwnd 0x%X", uintptr(w.hwnd))
}

func (w *window) TypeKeys(seq string) error {
	strokes, err := ParseKeys(seq)
	if err != nil {
		return err
	}
	if err := w.SetFocus(); err != nil {
		return err
	}
	for i, s := range strokes {
		if i > 0 {
			time.Sleep(keyDelay)
		}
		if err := sendStroke(s); err != nil {
			return fmt.Errorf("send %s: %w", s, err)
		}
	}
	return nil
}

func sendStroke(s Stroke) error {
	var inputs []INPUT
	if s.VK != 0 {
		var flags uint32
		if s.Extended() {
			flags = KEYEVENTF_EXTENDEDKEY
		}
		inputs = append(inputs,
			INPUT{Type: INPUT_KEYBOARD, Ki: KEYBDINPUT{WVk: s.VK, DwFlags: flags}},
			INPUT{Type: INPUT_KEYBOARD, Ki: KEYBDINPUT{WVk: s.VK, DwFlags: flags | KEYEVENTF_KEYUP}},
		)
	} else {
		// Characters outside the BMP go out as a surrogate pair.
		units := utf16.Encode([]rune{s.Rune})
		for _, u := range units {
			inputs = append(inputs, INPUT{Type: INPUT_KEYBOARD, Ki: KEYBDINPUT{WScan: u, DwFlags: KEYEVENTF_UNICODE}})
		}
		for _, u := range units {
			inputs = append(inputs, INPUT{Type: INPUT_KEYBOARD, Ki: KEYBDINPUT{WScan: u, DwFlags: KEYEVENTF_UNICODE | KEYEVENTF_KEYUP}})
		}
	}

	ret, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(ret) != len(inputs) {
		return fmt.Errorf("SendInput inserted %d of %d events: %v", ret, len(inputs), err)
	}
	return nil
}

func (w *window) checkAlive() error {
	if ok, _, _ := procIsWindow.Call(uintptr(w.hwnd)); ok == 0 {
		return fmt.Errorf("%w: %s is gone", ErrWindowNotFound, w)
	}
	return nil
}

// withAttachedInput runs fn with this thread's input state attached to the
// thread owning hwnd, which Windows requires before it lets a background
// process change focus.
func withAttachedInput(hwnd windows.HWND, fn func()) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	self := windows.GetCurrentThreadId()
	other, _ := windows.GetWindowThreadProcessId(hwnd, nil)
	if other == 0 || other == self {
		fn()
		return
	}
	procAttachThreadInput.Call(uintptr(self), uintptr(other), 1)
	defer procAttachThreadInput.Call(uintptr(self), uintptr(other), 0)
	fn()
}

func (w *window) SetFocus() error {
	if err := w.checkAlive(); err != nil {
		return err
	}
	if iconic, _, _ := procIsIconic.Call(uintptr(w.hwnd)); iconic != 0 {
		procShowWindow.Call(uintptr(w.hwnd), SW_RESTORE)
	}

	var ok uintptr
	var callErr error
	withAttachedInput(windows.GetForegroundWindow(), func() {
		ok, _, callErr = procSetForeground.Call(uintptr(w.hwnd))
		procBringWindowToTop.Call(uintptr(w.hwnd))
	})
	if ok == 0 {
		return fmt.Errorf("SetForegroundWindow %s: %v", w, callErr)
	}
	return nil
}

func (w *window) SetKeyboardFocus() error {
	if err := w.checkAlive(); err != nil {
		return err
	}

	var prev uintptr
	var callErr error
	withAttachedInput(w.hwnd, func() {
		prev, _, callErr = procSetFocus.Call(uintptr(w.hwnd))
	})
	// SetFocus returns the previous focus, which is legitimately NULL.
	if prev == 0 && callErr != nil && callErr != windows.ERROR_SUCCESS {
		return fmt.Errorf("SetFocus %s: %v", w, callErr)
	}
	return nil
}
